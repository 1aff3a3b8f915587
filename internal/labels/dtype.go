package labels

// DType names the signed integer width a label matrix is stored in.
type DType uint8

const (
	Int8 DType = iota + 1
	Int16
	Int32
)

// String returns the conventional type name.
func (d DType) String() string {
	switch d {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// Bits returns the storage width in bits.
func (d DType) Bits() int {
	switch d {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int32:
		return 32
	default:
		return 0
	}
}

// MinimalDType picks the narrowest width that can hold max.
// 127 fits Int8 and 32767 fits Int16; one more moves to the next width.
func MinimalDType(max int32) DType {
	switch {
	case max < 128:
		return Int8
	case max < 32768:
		return Int16
	default:
		return Int32
	}
}

// MaxLabel returns the largest value in l, or 0 for an empty matrix.
func MaxLabel(l *Labels) int32 {
	var m int32
	for i, v := range l.Data {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Compact is a label matrix held in its narrowest integer encoding.
// Exactly one of the backing slices is populated, chosen by DType.
type Compact struct {
	Shape []int
	DType DType

	i8  []int8
	i16 []int16
	i32 []int32
}

// Downsample converts l to the smallest encoding able to represent its
// largest identifier. Identifiers are not renumbered.
func Downsample(l *Labels) *Compact {
	c := &Compact{
		Shape: append([]int(nil), l.Shape...),
		DType: MinimalDType(MaxLabel(l)),
	}
	switch c.DType {
	case Int8:
		c.i8 = make([]int8, len(l.Data))
		for i, v := range l.Data {
			c.i8[i] = int8(v)
		}
	case Int16:
		c.i16 = make([]int16, len(l.Data))
		for i, v := range l.Data {
			c.i16[i] = int16(v)
		}
	default:
		c.i32 = append([]int32(nil), l.Data...)
	}
	return c
}

// Len returns the number of stored elements.
func (c *Compact) Len() int {
	switch c.DType {
	case Int8:
		return len(c.i8)
	case Int16:
		return len(c.i16)
	default:
		return len(c.i32)
	}
}

// Expand returns a fresh int32 label matrix with the stored values.
func (c *Compact) Expand() *Labels {
	out := New[int32](c.Shape...)
	switch c.DType {
	case Int8:
		for i, v := range c.i8 {
			out.Data[i] = int32(v)
		}
	case Int16:
		for i, v := range c.i16 {
			out.Data[i] = int32(v)
		}
	default:
		copy(out.Data, c.i32)
	}
	return out
}
