package textfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/guiguan/caster"
	"github.com/npillmayer/sumrope"
	"github.com/npillmayer/sumrope/btree"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrNotRegular is returned for paths which do not denote a regular file.
var ErrNotRegular = errors.New("textfile: not a regular file")

// ErrClosed is returned by Wait for loaders closed before they were started.
var ErrClosed = errors.New("textfile: loader closed")

// ErrLoading is returned if a file could not be read completely.
var ErrLoading = errors.New("textfile: error loading text fragment")

// Progress is broadcast to subscribers of a loader after every fragment read.
type Progress struct {
	Path     string // file name
	Fragment int    // number of fragments read so far
	Loaded   int64  // number of bytes read so far
	Total    int64  // size of the file in bytes
}

func (p Progress) String() string {
	return fmt.Sprintf("%s: fragment #%d, %d/%d bytes", p.Path, p.Fragment, p.Loaded, p.Total)
}

// Loader reads an OS text file into a text, asynchronously.
//
// A loader is created with Open, may be subscribed to, and is started with
// Start. Wait blocks until loading has finished. Loaders which are never
// started have to be closed with Close.
type Loader struct {
	path     string         // file name
	info     os.FileInfo    // result from Stat(path)
	file     *os.File       // file handle
	fragSize int64          // length of fragments to read
	cast     *caster.Caster // broadcaster for async file loading
	builder  *sumrope.Builder
	start    sync.Once
	done     chan struct{}
	text     sumrope.Text
	err      error // remember last I/O error
}

// Load reads a file, which must be a UTF-8 text file, and returns it as a text.
// Clients may indicate a recommended fragment length, or 0 to let Load choose
// one depending on the size of the file.
//
// Load blocks until the file is read completely or ctx is done.
func Load(ctx context.Context, name string, fragSize int64) (sumrope.Text, error) {
	l, err := Open(name, fragSize, btree.DefaultConfig())
	if err != nil {
		return sumrope.Text{}, err
	}
	l.Start(ctx)
	return l.Wait()
}

// Open opens an OS file for loading into a text with tree shape cfg.
// Opening and checking the file is done synchronously; reading starts with
// a call to Start.
func Open(name string, fragSize int64, cfg btree.Config) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	l := &Loader{
		path:     name,
		info:     fi,
		file:     file,
		fragSize: fragmentSize(fi.Size(), fragSize),
		cast:     caster.New(nil), // we will broadcast messages when fragments are loaded
		builder:  sumrope.NewBuilder(cfg),
		done:     make(chan struct{}),
	}
	tracer().Debugf("opened %s with %d bytes, fragment size is %d", name, fi.Size(), l.fragSize)
	return l, nil
}

// fragmentSize selects a fragment length for a file of size bytes. Requests
// for fragments larger than 10 KB are overridden.
func fragmentSize(size int64, requested int64) int64 {
	if requested > 0 && requested <= tenKb {
		return requested
	}
	switch {
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// Size returns the size of the file in bytes.
func (l *Loader) Size() int64 {
	return l.info.Size()
}

// Subscribe returns a channel of progress messages. The channel is closed when
// loading has finished or ctx is done. Subscribers have to drain the channel,
// otherwise loading stalls. Subscriptions after loading has finished return a
// closed channel.
func (l *Loader) Subscribe(ctx context.Context) <-chan Progress {
	if ctx == nil {
		ctx = context.Background()
	}
	out := make(chan Progress, 1)
	select {
	case <-l.done:
		close(out)
		return out
	default:
	}
	sub, ok := l.cast.Sub(ctx, 1)
	if !ok {
		close(out)
		return out
	}
	go func() {
		defer close(out)
		for m := range sub {
			if p, ok := m.(Progress); ok {
				out <- p
			}
		}
	}()
	return out
}

// Start starts reading the file in the background. Reading stops early if
// ctx is done. Calling Start more than once has no effect.
func (l *Loader) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.start.Do(func() {
		go l.loadAllFragments(ctx)
	})
}

// Close releases the file of a loader which has not been started. Start has
// no effect on a closed loader, and Wait returns ErrClosed. After Start, the
// file is closed when loading finishes and Close does nothing.
func (l *Loader) Close() error {
	var err error
	l.start.Do(func() {
		defer close(l.done)
		l.cast.Close()
		l.err = ErrClosed
		err = l.file.Close()
	})
	return err
}

// Done returns a channel which is closed as soon as loading has finished.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until loading has finished and returns the text. If an error
// occurred, the text is void.
func (l *Loader) Wait() (sumrope.Text, error) {
	<-l.done
	return l.text, l.err
}

// --- File loading goroutine ------------------------------------------------

func (l *Loader) loadAllFragments(ctx context.Context) {
	defer close(l.done)
	defer l.cast.Close()
	defer l.file.Close()
	//
	size := l.info.Size()
	buf := make([]byte, l.fragSize+utf8.UTFMax)
	var carry int // bytes of an incomplete rune at the end of the previous fragment
	var pos int64
	p := Progress{Path: l.path, Total: size}
	for pos < size {
		if err := ctx.Err(); err != nil {
			l.fail(err)
			return
		}
		n := min(l.fragSize, size-pos)
		cnt, err := l.file.ReadAt(buf[carry:carry+int(n)], pos)
		if err != nil && err != io.EOF {
			l.fail(fmt.Errorf("%w: %w", ErrLoading, err))
			return
		} else if int64(cnt) < n {
			l.fail(fmt.Errorf("%w: file %s has been truncated", ErrLoading, l.path))
			return
		}
		pos += n
		frag := buf[:carry+cnt]
		keep := incompleteSuffix(frag)
		if pos == size {
			keep = 0 // invalid trailing bytes are reported by the builder
		}
		if err := l.builder.AppendBytes(frag[:len(frag)-keep]); err != nil {
			l.fail(fmt.Errorf("file %s, fragment at %d: %w", l.path, pos-n, err))
			return
		}
		carry = copy(buf, frag[len(frag)-keep:])
		p.Fragment++
		p.Loaded = pos
		l.cast.Pub(p)
	}
	l.text = l.builder.Text()
	tracer().Infof("loaded %s: %d bytes in %d fragments", l.path, size, p.Fragment)
}

func (l *Loader) fail(err error) {
	tracer().Errorf("loading %s: %v", l.path, err)
	l.err = err
}

// incompleteSuffix returns the number of trailing bytes of b which start a
// rune, but do not complete it.
func incompleteSuffix(b []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if utf8.FullRune(b[len(b)-i:]) {
				return 0
			}
			return i
		}
	}
	return 0
}
