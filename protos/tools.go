//go:build tools

// Package protos holds the slothold protobuf definitions. Generated code lives
// under gen/ and is committed.
package protos

//go:generate protoc -I . --go_out=gen --go_opt=paths=source_relative --go-grpc_out=gen --go-grpc_opt=paths=source_relative slothold/v1/slothold.proto

import (
	_ "google.golang.org/grpc/cmd/protoc-gen-go-grpc"
	_ "google.golang.org/protobuf/cmd/protoc-gen-go"
)
