package registry

import pb "github.com/nodefleet/funtonic/api/proto/v1"

// TagNode is the recursive value an executor's tags resolve to:
// string | list<TagNode> | map<string,TagNode> (spec.md section 3, TagTree).
// The predicate matcher consumes this shape directly; it never sees the
// wire-level oneof.
type TagNode interface {
	isTagNode()
}

// TagValue is a leaf string tag value.
type TagValue string

func (TagValue) isTagNode() {}

// TagList is an ordered list of tag values.
type TagList []TagNode

func (TagList) isTagNode() {}

// TagMap is a nested map of tag values, keyed by name.
type TagMap map[string]TagNode

func (TagMap) isTagNode() {}

// TagTree is the top-level set of named tags an executor registers with.
type TagTree map[string]TagNode

// TagTreeFromProto converts the wire representation carried in
// GetTasksRequest.tags into the registry's native TagTree.
func TagTreeFromProto(tags map[string]*pb.Tag) TagTree {
	if tags == nil {
		return nil
	}
	tree := make(TagTree, len(tags))
	for k, v := range tags {
		tree[k] = tagNodeFromProto(v)
	}
	return tree
}

func tagNodeFromProto(t *pb.Tag) TagNode {
	if t == nil {
		return nil
	}
	switch v := t.GetTag().(type) {
	case *pb.Tag_Value:
		return TagValue(v.Value)
	case *pb.Tag_ValueList:
		list := make(TagList, 0, len(v.ValueList.GetValues()))
		for _, elem := range v.ValueList.GetValues() {
			list = append(list, tagNodeFromProto(elem))
		}
		return list
	case *pb.Tag_ValueMap:
		m := make(TagMap, len(v.ValueMap.GetValues()))
		for k, elem := range v.ValueMap.GetValues() {
			m[k] = tagNodeFromProto(elem)
		}
		return m
	default:
		return nil
	}
}
