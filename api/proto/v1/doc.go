package funtonicpb

import "fmt"

// protoString backs every message's String() method. Real protoc-gen-go
// output calls into protoimpl's text marshaler; these types keep it to a
// plain Printf since no .proto compiler runs over this tree (see the
// package doc in messages.go).
func protoString(m any) string {
	return fmt.Sprintf("%+v", m)
}
