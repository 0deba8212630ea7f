package tlvcodec

import (
	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/tlv"
)

// must panics on an encode-side error. Every caller writes to an
// in-memory bytes.Buffer, so the only way writeControlAndTag or friends
// fail is a non-UTF8 string slipping through, which the codec treats as
// programmer error rather than a recoverable condition.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// enter moves the reader onto the outermost structure and descends into
// it, discarding the top-level Next/EnterContainer error handling that
// would otherwise repeat at the top of every decode branch. Every
// envelope body this codec produces is a single top-level structure.
func enter(r *tlv.Reader) {
	if err := r.Next(); err != nil {
		return
	}
	_ = r.EnterContainer()
}

// next advances to the next field inside the current structure, stopping
// at the end-of-container marker.
func next(r *tlv.Reader) bool {
	if err := r.Next(); err != nil {
		return false
	}
	return !r.IsEndOfContainer()
}

func mustString(r *tlv.Reader) string {
	s, _ := r.String()
	return s
}

func mustBytes(r *tlv.Reader) []byte {
	b, _ := r.Bytes()
	return b
}

func writeStringSlice(w *tlv.Writer, tag tlv.Tag, values []string) error {
	if err := w.StartArray(tag); err != nil {
		return err
	}
	for _, v := range values {
		if err := w.PutString(tlv.Anonymous(), v); err != nil {
			return err
		}
	}
	return w.EndContainer()
}

func mustStringSlice(r *tlv.Reader) []string {
	if err := r.EnterContainer(); err != nil {
		return nil
	}
	var out []string
	for next(r) {
		out = append(out, mustString(r))
	}
	return out
}

func attributeHandlesToBytes(hs []handle.AttributeHandle) [][]byte {
	out := make([][]byte, len(hs))
	for i, h := range hs {
		out[i] = h.Bytes()
	}
	return out
}

func writeHandleSlice(w *tlv.Writer, tag tlv.Tag, values [][]byte) error {
	if err := w.StartArray(tag); err != nil {
		return err
	}
	for _, v := range values {
		if err := w.PutBytes(tlv.Anonymous(), v); err != nil {
			return err
		}
	}
	return w.EndContainer()
}

// writeAttributeMap and writeParameterMap encode a handle-keyed byte map
// as an array of two-field structures: the handle bytes under tag 0, the
// value bytes under tag 1. HLA attribute/parameter value sets are
// unordered, so array order carries no meaning.

func writeAttributeMap(w *tlv.Writer, tag tlv.Tag, m map[handle.AttributeHandle][]byte) error {
	if err := w.StartArray(tag); err != nil {
		return err
	}
	for h, v := range m {
		if err := w.StartStructure(tlv.Anonymous()); err != nil {
			return err
		}
		if err := w.PutBytes(ctx(f0), h.Bytes()); err != nil {
			return err
		}
		if err := w.PutBytes(ctx(f1), v); err != nil {
			return err
		}
		if err := w.EndContainer(); err != nil {
			return err
		}
	}
	return w.EndContainer()
}

func mustAttributeMap(r *tlv.Reader) map[handle.AttributeHandle][]byte {
	if err := r.EnterContainer(); err != nil {
		return nil
	}
	out := make(map[handle.AttributeHandle][]byte)
	for next(r) {
		if err := r.EnterContainer(); err != nil {
			continue
		}
		var key handle.AttributeHandle
		var val []byte
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				key = handle.NewAttributeHandle(mustBytes(r))
			case f1:
				val = mustBytes(r)
			}
		}
		_ = r.ExitContainer()
		out[key] = val
	}
	return out
}

func writeParameterMap(w *tlv.Writer, tag tlv.Tag, m map[handle.ParameterHandle][]byte) error {
	if err := w.StartArray(tag); err != nil {
		return err
	}
	for h, v := range m {
		if err := w.StartStructure(tlv.Anonymous()); err != nil {
			return err
		}
		if err := w.PutBytes(ctx(f0), h.Bytes()); err != nil {
			return err
		}
		if err := w.PutBytes(ctx(f1), v); err != nil {
			return err
		}
		if err := w.EndContainer(); err != nil {
			return err
		}
	}
	return w.EndContainer()
}

func mustParameterMap(r *tlv.Reader) map[handle.ParameterHandle][]byte {
	if err := r.EnterContainer(); err != nil {
		return nil
	}
	out := make(map[handle.ParameterHandle][]byte)
	for next(r) {
		if err := r.EnterContainer(); err != nil {
			continue
		}
		var key handle.ParameterHandle
		var val []byte
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				key = handle.NewParameterHandle(mustBytes(r))
			case f1:
				val = mustBytes(r)
			}
		}
		_ = r.ExitContainer()
		out[key] = val
	}
	return out
}
