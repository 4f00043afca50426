package model

import "time"

type Achievement struct {
	title, description string
	createdAt          time.Time
}

func (a *Achievement) GetTitle() string { return a.title }

func (a *Achievement) SetTitle(title string) { a.title = title }

func (a *Achievement) GetDescription() string { return a.description }

func (a *Achievement) SetDescription(description string) { a.description = description }

func (a *Achievement) GetCreatedAt() time.Time { return a.createdAt }

func (a *Achievement) SetCreatedAt(createdAt time.Time) { a.createdAt = createdAt }
