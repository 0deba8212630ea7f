package handle

import "testing"

func TestObjectClassCacheIsMutualInverse(t *testing.T) {
	c := NewCaches()
	h := NewObjectClassHandle([]byte{0xAB})
	c.PutObjectClass("Ball", h)

	gotHandle, ok := c.ObjectClassHandleOf("Ball")
	if !ok || gotHandle != h {
		t.Fatalf("ObjectClassHandleOf(Ball) = (%v, %v), want (%v, true)", gotHandle, ok, h)
	}
	gotName, ok := c.ObjectClassNameOf(h)
	if !ok || gotName != "Ball" {
		t.Fatalf("ObjectClassNameOf(h) = (%q, %v), want (\"Ball\", true)", gotName, ok)
	}
}

func TestAttributeCacheIsPerClass(t *testing.T) {
	c := NewCaches()
	ball := NewObjectClassHandle([]byte{0x01})
	car := NewObjectClassHandle([]byte{0x02})

	c.PutAttribute(ball, "X", NewAttributeHandle([]byte{0x10}))
	c.PutAttribute(car, "X", NewAttributeHandle([]byte{0x20}))

	ballX, ok := c.AttributeHandleOf(ball, "X")
	if !ok || ballX != NewAttributeHandle([]byte{0x10}) {
		t.Fatalf("ball attribute X = (%v, %v), want 0x10", ballX, ok)
	}
	carX, ok := c.AttributeHandleOf(car, "X")
	if !ok || carX != NewAttributeHandle([]byte{0x20}) {
		t.Fatalf("car attribute X = (%v, %v), want 0x20", carX, ok)
	}
}

func TestCacheMissReturnsFalse(t *testing.T) {
	c := NewCaches()
	if _, ok := c.ObjectClassHandleOf("Unknown"); ok {
		t.Fatalf("ObjectClassHandleOf(Unknown) ok = true, want false")
	}
}

func TestClearEmptiesAllCaches(t *testing.T) {
	c := NewCaches()
	ball := NewObjectClassHandle([]byte{0x01})
	c.PutObjectClass("Ball", ball)
	c.PutAttribute(ball, "X", NewAttributeHandle([]byte{0x10}))

	c.Clear()

	if _, ok := c.ObjectClassHandleOf("Ball"); ok {
		t.Fatalf("ObjectClassHandleOf(Ball) ok = true after Clear, want false")
	}
	if _, ok := c.AttributeHandleOf(ball, "X"); ok {
		t.Fatalf("AttributeHandleOf(ball, X) ok = true after Clear, want false")
	}
}
