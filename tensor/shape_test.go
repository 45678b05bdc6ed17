package tensor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1}, // Scalar
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
		{Shape{2, 0, 4}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{3, 0, 4}).Validate(); err != nil {
		t.Errorf("Shape{3,0,4}.Validate() failed: %v", err)
	}
	if err := (Shape{3, -1}).Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Shape{3,-1}.Validate() = %v, want ErrInvalidShape", err)
	}
}

func TestShapeStrides(t *testing.T) {
	tests := []struct {
		shape   Shape
		strides []int
	}{
		{Shape{5}, []int{1}},
		{Shape{3, 4}, []int{4, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got, err := tt.shape.Strides()
		if err != nil {
			t.Fatalf("Shape%v.Strides() failed: %v", tt.shape, err)
		}
		if diff := cmp.Diff(tt.strides, got); diff != "" {
			t.Errorf("Shape%v.Strides() mismatch (-want +got):\n%s", tt.shape, diff)
		}
	}

	if _, err := (Shape{}).Strides(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("rank-0 Strides() should fail with ErrInvalidShape, got %v", err)
	}
}

func TestRavelUnravelRoundTrip(t *testing.T) {
	shapes := []Shape{{4}, {2, 3}, {2, 3, 4}, {1, 5, 1, 2}}

	for _, shape := range shapes {
		for flat := 0; flat < shape.NumElements(); flat++ {
			idx, err := shape.Unravel(flat)
			if err != nil {
				t.Fatalf("Unravel(%d, %v) failed: %v", flat, shape, err)
			}
			back, err := shape.Ravel(idx)
			if err != nil {
				t.Fatalf("Ravel(%v, %v) failed: %v", idx, shape, err)
			}
			if back != flat {
				t.Errorf("round trip %d -> %v -> %d for shape %v", flat, idx, back, shape)
			}
		}
	}
}

func TestRavelErrors(t *testing.T) {
	s := Shape{2, 3}

	if _, err := s.Ravel([]int{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("short indices: got %v, want ErrDimensionMismatch", err)
	}
	if _, err := s.Ravel([]int{1, 3}); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("index past dimension: got %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := s.Unravel(6); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("flat index past end: got %v, want ErrIndexOutOfBounds", err)
	}
}

func TestScalarRavel(t *testing.T) {
	s := Shape{}

	flat, err := s.Ravel([]int{})
	if err != nil || flat != 0 {
		t.Errorf("scalar Ravel = (%d, %v), want (0, nil)", flat, err)
	}
	idx, err := s.Unravel(0)
	if err != nil || len(idx) != 0 {
		t.Errorf("scalar Unravel = (%v, %v), want ([], nil)", idx, err)
	}
}

func TestReduceShape(t *testing.T) {
	tests := []struct {
		shape    Shape
		axis     int
		keepDims bool
		want     Shape
	}{
		{Shape{2, 3, 4}, 1, false, Shape{2, 4}},
		{Shape{2, 3, 4}, 1, true, Shape{2, 1, 4}},
		{Shape{2, 3, 4}, -1, false, Shape{2, 3}},
		{Shape{5}, 0, false, Shape{}},
	}

	for _, tt := range tests {
		got, err := tt.shape.ReduceShape(tt.axis, tt.keepDims)
		if err != nil {
			t.Fatalf("ReduceShape(%v, %d, %v) failed: %v", tt.shape, tt.axis, tt.keepDims, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ReduceShape(%v, %d, %v) = %v, want %v", tt.shape, tt.axis, tt.keepDims, got, tt.want)
		}
	}

	if _, err := (Shape{2, 3}).ReduceShape(2, false); !errors.Is(err, ErrAxisOutOfRange) {
		t.Errorf("axis 2 of rank 2: got %v, want ErrAxisOutOfRange", err)
	}
}

func TestPermuteShape(t *testing.T) {
	got, err := (Shape{2, 3, 4}).PermuteShape([]int{2, 0, 1})
	if err != nil {
		t.Fatalf("PermuteShape failed: %v", err)
	}
	if !got.Equal(Shape{4, 2, 3}) {
		t.Errorf("PermuteShape = %v, want [4 2 3]", got)
	}

	if _, err := (Shape{2, 3}).PermuteShape([]int{0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("short axes: got %v, want ErrDimensionMismatch", err)
	}
	if _, err := (Shape{2, 3}).PermuteShape([]int{0, 0}); !errors.Is(err, ErrInvalidPermutation) {
		t.Errorf("repeated axis: got %v, want ErrInvalidPermutation", err)
	}
}

func TestCombineIndices(t *testing.T) {
	tests := []struct {
		indices   []int
		axisValue int
		axis      int
		want      []int
	}{
		{[]int{7, 9}, 5, 0, []int{5, 7, 9}},
		{[]int{7, 9}, 5, 1, []int{7, 5, 9}},
		{[]int{7, 9}, 5, 2, []int{7, 9, 5}},
		{[]int{}, 3, 0, []int{3}},
	}

	for _, tt := range tests {
		got := CombineIndices(tt.indices, tt.axisValue, tt.axis)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("CombineIndices(%v, %d, %d) mismatch (-want +got):\n%s",
				tt.indices, tt.axisValue, tt.axis, diff)
		}
	}
}

func TestBroadcastCompatible(t *testing.T) {
	tests := []struct {
		a, b Shape
		ok   bool
	}{
		{Shape{3, 5}, Shape{3, 5}, true},
		{Shape{3, 1}, Shape{3, 5}, true},
		{Shape{2, 2}, Shape{1, 2}, true},
		{Shape{5}, Shape{3, 5}, true},
		{Shape{}, Shape{3, 5}, true},
		{Shape{3, 4}, Shape{3, 5}, false},
	}

	for _, tt := range tests {
		if got := BroadcastCompatible(tt.a, tt.b); got != tt.ok {
			t.Errorf("BroadcastCompatible(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.ok)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	got, err := BroadcastShapes(Shape{3, 1}, Shape{3, 5})
	if err != nil {
		t.Fatalf("BroadcastShapes failed: %v", err)
	}
	if !got.Equal(Shape{3, 5}) {
		t.Errorf("BroadcastShapes = %v, want [3 5]", got)
	}

	if _, err := BroadcastShapes(Shape{3, 4}, Shape{3, 5}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("incompatible shapes: got %v, want ErrShapeMismatch", err)
	}
}

func TestBroadcastOffset(t *testing.T) {
	// Shape [1,2] against global index in a [2,2] iteration space:
	// axis 0 clamps to 0.
	s := Shape{1, 2}

	tests := []struct {
		global []int
		want   int
	}{
		{[]int{0, 0}, 0},
		{[]int{0, 1}, 1},
		{[]int{1, 0}, 0},
		{[]int{1, 1}, 1},
	}

	for _, tt := range tests {
		got, err := s.BroadcastOffset(tt.global)
		if err != nil {
			t.Fatalf("BroadcastOffset(%v) failed: %v", tt.global, err)
		}
		if got != tt.want {
			t.Errorf("BroadcastOffset(%v) = %d, want %d", tt.global, got, tt.want)
		}
	}

	// Lower-rank operand aligns from the trailing axis.
	v := Shape{2}
	got, err := v.BroadcastOffset([]int{1, 1})
	if err != nil || got != 1 {
		t.Errorf("trailing alignment = (%d, %v), want (1, nil)", got, err)
	}
}
