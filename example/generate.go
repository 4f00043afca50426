// Package example shows vogen run over two packages. The output lands in gen/.
package example

//go:generate go run ../cmd/vogen --config vogen.yaml
