package pets

type Pet struct {
	name      string
	interests []string
	owners    map[string]int64
}

func (p Pet) GetName() string { return p.name }

func (p *Pet) SetName(name string) { p.name = name }

func (p Pet) GetInterests() []string { return p.interests }

func (p *Pet) SetInterests(interests []string) { p.interests = interests }

func (p Pet) GetOwners() map[string]int64 { return p.owners }

func (p *Pet) SetOwners(owners map[string]int64) { p.owners = owners }
