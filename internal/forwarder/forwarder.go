package forwarder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/habibiefaried/fountain-relay/internal/config"
	"github.com/habibiefaried/fountain-relay/internal/linesource"
	"github.com/habibiefaried/fountain-relay/internal/notify"
	"github.com/habibiefaried/fountain-relay/internal/storage"
)

// Options configures a Forwarder. Zero values get defaults.
type Options struct {
	Recipients []string
	// OnLogError is config.OnErrorFatal (default) or config.OnErrorContinue.
	OnLogError string
	Console    io.Writer
	Clock      func() time.Time
	NewID      func() string
}

// Forwarder couples a line source to the log and the notifier.
type Forwarder struct {
	src        linesource.Source
	store      storage.Storage
	notifier   notify.Notifier
	recipients []string
	onLogError string
	console    io.Writer
	clock      func() time.Time
	newID      func() string
}

func New(src linesource.Source, store storage.Storage, n notify.Notifier, opts Options) *Forwarder {
	f := &Forwarder{
		src:        src,
		store:      store,
		notifier:   n,
		recipients: append([]string(nil), opts.Recipients...),
		onLogError: opts.OnLogError,
		console:    opts.Console,
		clock:      opts.Clock,
		newID:      opts.NewID,
	}
	if f.onLogError == "" {
		f.onLogError = config.OnErrorFatal
	}
	if f.console == nil {
		f.console = os.Stdout
	}
	if f.clock == nil {
		f.clock = time.Now
	}
	if f.newID == nil {
		f.newID = storage.NewID
	}
	return f
}

// Run forwards lines until ctx is cancelled (returns nil), the source fails
// (returns the *linesource.DeviceError), or a log write fails under the
// fatal policy (returns the storage error).
func (f *Forwarder) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks a pending Next.
			f.src.Close()
		case <-stop:
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := f.src.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := f.Forward(line); err != nil {
			return err
		}
	}
}

// Forward handles one received line: log, notify, echo to the console.
// The notification is attempted even when the log write fails.
func (f *Forwarder) Forward(line string) error {
	entry := storage.Entry{
		ID:      f.newID(),
		Time:    f.clock(),
		Message: line,
	}

	logErr := f.store.Append(entry)
	if logErr != nil {
		log.Printf("forwarder: %s not logged: %v", entry.ID, logErr)
	}

	f.notify(entry)

	fmt.Fprintln(f.console, storage.FormatEntry(entry))

	if logErr != nil && f.onLogError == config.OnErrorFatal {
		return logErr
	}
	return nil
}

// notify sends the alert and discards any failure after recording it.
func (f *Forwarder) notify(entry storage.Entry) {
	err := f.notifier.Send(f.recipients, entry.Message)
	if err == nil {
		return
	}

	var ne *notify.NotificationError
	if errors.As(err, &ne) {
		log.Printf("failed to send email: %q (%s): %v", entry.Message, entry.ID, ne)
		return
	}
	log.Printf("unexpected notifier error for %q (%s): %v", entry.Message, entry.ID, err)
}
