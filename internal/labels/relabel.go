package labels

// Relabel renumbers the objects in l to 1..n, preserving the order of
// their original identifiers. Background stays 0. The input is unchanged.
func Relabel(l *Labels) *Labels {
	ids := Indices(l)
	next := make(map[int32]int32, len(ids))
	for i, id := range ids {
		next[id] = int32(i + 1)
	}
	out := New[int32](l.Shape...)
	for i, v := range l.Data {
		if v > 0 {
			out.Data[i] = next[v]
		}
	}
	return out
}
