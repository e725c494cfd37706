package base

import (
	"bytes"
	"io"
	"sync"
)

/***************************************
 * Recycler[T] is a generic sync.Pool
 ***************************************/

type Recycler[T any] interface {
	Allocate() T
	Release(T)
}

type recyclerPool[T any] struct {
	pool      sync.Pool
	onRelease func(T)
}

func NewRecycler[T any](factory func() T, release func(T)) Recycler[T] {
	result := &recyclerPool[T]{}
	result.pool.New = func() any { return factory() }
	result.onRelease = release
	return result
}
func (x *recyclerPool[T]) Allocate() (result T) {
	result = x.pool.Get().(T)
	return
}
func (x *recyclerPool[T]) Release(item T) {
	x.onRelease(item)
	x.pool.Put(item)
}

/***************************************
 * Recycle temporary byte arrays
 ***************************************/

type bytesRecyclerPool struct {
	stride int
	pool   sync.Pool
}

type BytesRecycler interface {
	Stride() int
	Recycler[*[]byte]
}

func newBytesRecycler(stride int) BytesRecycler {
	result := new(bytesRecyclerPool)
	result.stride = stride
	result.pool.New = func() any {
		buf := make([]byte, result.stride)
		return &buf
	}
	return result
}
func (x *bytesRecyclerPool) Stride() int { return x.stride }
func (x *bytesRecyclerPool) Allocate() (item *[]byte) {
	item = x.pool.Get().(*[]byte)
	Assert(func() bool { return item != nil && len(*item) == x.stride })
	return
}
func (x *bytesRecyclerPool) Release(item *[]byte) {
	Assert(func() bool { return item != nil && len(*item) == x.stride })
	x.pool.Put(item)
}

var TransientPage64KiB = newBytesRecycler(64 << 10)
var TransientPage4KiB = newBytesRecycler(4 << 10)

/***************************************
 * Recycle bytes buffers
 ***************************************/

var TransientBuffer = NewRecycler(
	func() *bytes.Buffer { return &bytes.Buffer{} },
	func(b *bytes.Buffer) {
		b.Reset()
	})

// io copy with transient bytes to replace io.Copy()
func TransientIoCopy(dst io.Writer, src io.Reader, pageAlloc BytesRecycler) (size int64, err error) {
	buf := pageAlloc.Allocate()
	defer pageAlloc.Release(buf)

	size, err = io.CopyBuffer(dst, src, *buf)
	if err == io.EOF {
		err = nil
	}
	return
}
