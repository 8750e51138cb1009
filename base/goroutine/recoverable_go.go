package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/goimx/base/log"
)

// PanicEvent carries a recovered panic and the stack it was raised on.
type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(p interface{}, stack []byte)
}

type Option func(*options)

func WithBeforeStart(f func()) Option {
	return func(o *options) {
		o.beforeStart = f
	}
}

func WithAfterEnded(f func()) Option {
	return func(o *options) {
		o.afterEnded = f
	}
}

func WithAfterRecovered(f func(p interface{}, stack []byte)) Option {
	return func(o *options) {
		o.afterRecovered = f
	}
}

// RecoverableGo runs f on its own goroutine. The returned channel yields one
// PanicEvent if f panics and is closed without a value if f returns.
func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	done := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if o.afterEnded != nil {
				o.afterEnded()
			}

			p := recover()
			if p == nil {
				close(done)
				return
			}

			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if o.afterRecovered != nil {
				o.afterRecovered(p, stack)
			}

			done <- &PanicEvent{p, stack}
			close(done)
		}()

		if o.beforeStart != nil {
			o.beforeStart()
		}

		f()
	}()

	return done
}
