package flatten

import "strconv"

// childKey builds the key of a child from its parent key. Segments of the
// root object and array indices at depth 0 are used as is.
func (f *Flattener) childKey(parent, segment string, index bool, depth int) string {
	if depth == 0 {
		return segment
	}
	if index && f.arrays.surrounded {
		return parent + f.arrays.start + segment + f.arrays.end
	}
	return parent + f.separator + segment
}

func (f *Flattener) objectKey(parent, key string, depth int) string {
	return f.childKey(parent, key, false, depth)
}

func (f *Flattener) arrayKey(parent string, i, depth int) string {
	return f.childKey(parent, strconv.Itoa(i), true, depth)
}
