package source

import "context"

// Watch keeps a change subscription armed across one-shot tokens.
//
// produce is called once before Watch returns and again after every firing,
// before consume runs, so a mutation that happens while consume is busy is
// not lost. consume runs on the watch goroutine, one call at a time.
//
// The returned channel is closed when the goroutine exits after ctx is
// cancelled.
func Watch(ctx context.Context, produce func() ChangeToken, consume func()) <-chan struct{} {
	done := make(chan struct{})
	token := produce()

	go func() {
		defer close(done)

		for {
			select {
			case <-ctx.Done():
				return
			case <-token.Done():
				token = produce()
				consume()
			}
		}
	}()

	return done
}
