package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/refconsole/pkg/serrors"
)

// EventBus dispatches events to subscribers whose parameter list matches the
// published arguments. It is safe for concurrent use.
type EventBus interface {
	Publish(args ...any)
	PublishE(args ...any) error
	Subscribe(handler any)
	Unsubscribe(handler any)
	Clear()
	SubscribersCount() int
}

var (
	ErrNoSubscribers        = serrors.NewError("EVENTBUS_NO_SUBSCRIBERS", "no matching subscribers", "")
	ErrInvalidHandlerReturn = serrors.NewError("EVENTBUS_INVALID_HANDLER_RETURN", "invalid handler return signature", "")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type publisherImpl struct {
	log         logrus.FieldLogger
	mu          sync.RWMutex
	subscribers []reflect.Value
}

func NewEventPublisher(log logrus.FieldLogger) EventBus {
	return &publisherImpl{log: log}
}

func MatchSignature(handler any, args []any) bool {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func {
		return false
	}
	if t.NumIn() != len(args) {
		return false
	}

	for i, arg := range args {
		paramType := t.In(i)
		if arg == nil {
			switch paramType.Kind() {
			case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice:
				continue
			default:
				return false
			}
		}
		if !reflect.TypeOf(arg).AssignableTo(paramType) {
			return false
		}
	}
	return true
}

func (p *publisherImpl) snapshot() []reflect.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]reflect.Value, len(p.subscribers))
	copy(out, p.subscribers)
	return out
}

func callArgs(handler reflect.Value, args []any) []reflect.Value {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(handler.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	return in
}

// dispatch calls every matching handler outside the lock. It reports how many
// handlers matched, how many completed without panicking, and the errors.
func (p *publisherImpl) dispatch(args []any) (matched, completed int, errs []error) {
	for _, handler := range p.snapshot() {
		if !MatchSignature(handler.Interface(), args) {
			continue
		}
		matched++
		out, err := invoke(handler, args)
		if err != nil {
			if p.log != nil {
				p.log.Errorf("eventbus: %v (args %v)", err, args)
			}
			errs = append(errs, err)
			continue
		}
		completed++
		if err := handlerError(handler, out); err != nil {
			errs = append(errs, err)
		}
	}
	return matched, completed, errs
}

func invoke(handler reflect.Value, args []any) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", handler.Type(), r)
		}
	}()
	return handler.Call(callArgs(handler, args)), nil
}

func handlerError(handler reflect.Value, out []reflect.Value) error {
	switch len(out) {
	case 0:
		return nil
	case 1:
		if out[0].Type() != errorType {
			return fmt.Errorf("%w: handler %s return type is %s", ErrInvalidHandlerReturn, handler.Type(), out[0].Type())
		}
		if out[0].IsNil() {
			return nil
		}
		return out[0].Interface().(error)
	default:
		return fmt.Errorf("%w: handler %s returned %d values", ErrInvalidHandlerReturn, handler.Type(), len(out))
	}
}

// Publish is fire and forget. Returned handler errors are dropped.
func (p *publisherImpl) Publish(args ...any) {
	_, completed, _ := p.dispatch(args)
	if completed == 0 && p.log != nil {
		p.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

func (p *publisherImpl) PublishE(args ...any) error {
	matched, _, errs := p.dispatch(args)
	if matched == 0 {
		return ErrNoSubscribers
	}
	return errors.Join(errs...)
}

func (p *publisherImpl) Subscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		panic("handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, v)
}

// Unsubscribe removes the first subscriber registered with the same function.
func (p *publisherImpl) Unsubscribe(handler any) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subscribers {
		if s.Type() == v.Type() && s.Pointer() == v.Pointer() {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = nil
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
