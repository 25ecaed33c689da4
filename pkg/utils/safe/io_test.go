package safe_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/utils/safe"
)

type closer struct {
	err    error
	closed int
}

func (c *closer) Close() error {
	c.closed++
	return c.err
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	safe.Close(ctx, nil)

	ok := &closer{}
	safe.Close(ctx, ok)
	gt.Value(t, ok.closed).Equal(1)

	failing := &closer{err: errors.New("broken pipe")}
	safe.Close(ctx, failing)
	gt.Value(t, failing.closed).Equal(1)
}
