package safe_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/utils/safe"
)

type closeRecorder struct {
	io.Reader
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

// endlessBody never reaches EOF and counts the bytes handed out
type endlessBody struct {
	read   int64
	closed bool
}

func (b *endlessBody) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	b.read += int64(len(p))
	return len(p), nil
}

func (b *endlessBody) Close() error {
	b.closed = true
	return nil
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	safe.Close(ctx, nil)

	rc := &closeRecorder{err: errors.New("close failed")}
	safe.Close(ctx, rc)
	gt.Value(t, rc.closed).Equal(true)
}

func TestDrain(t *testing.T) {
	rc := &closeRecorder{Reader: strings.NewReader("leftover body")}
	safe.Drain(context.Background(), rc)
	gt.Value(t, rc.closed).Equal(true)

	n, _ := rc.Read(make([]byte, 8))
	gt.Number(t, n).Equal(0)
}

func TestDrainStopsAtLimit(t *testing.T) {
	body := &endlessBody{}
	safe.Drain(context.Background(), body)

	gt.Value(t, body.closed).Equal(true)
	gt.Number(t, body.read).LessOrEqual(int64(safe.MaxDrainSize))
	gt.Number(t, body.read).Greater(0)
}
