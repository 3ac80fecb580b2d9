package translate

import (
	"context"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
)

func TestAwaitDownloadDelivers(t *testing.T) {
	want := &proto.PageDownloadWillBegin{GUID: "abc"}
	wait := func() *proto.PageDownloadWillBegin { return want }

	info := awaitDownload(context.Background(), wait, time.Second)
	assert.Equal(t, want, info)
}

func TestAwaitDownloadTimeoutUnblocksWaiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	wait := func() *proto.PageDownloadWillBegin {
		// Mirrors the rod waiter: it only returns once its context ends.
		<-ctx.Done()
		close(exited)
		return nil
	}

	start := time.Now()
	info := awaitDownload(ctx, wait, 20*time.Millisecond)
	assert.Nil(t, info)
	assert.Less(t, time.Since(start), time.Second)

	// After the timeout branch, cancellation must release the waiter
	// goroutine; it must not stay parked on the long-lived browser.
	cancel()
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("download waiter did not exit after cancel")
	}
}

func TestAwaitDownloadHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)
	wait := func() *proto.PageDownloadWillBegin { <-block; return nil }

	start := time.Now()
	info := awaitDownload(ctx, wait, time.Minute)
	assert.Nil(t, info)
	assert.Less(t, time.Since(start), time.Second)
}
