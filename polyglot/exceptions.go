package polyglot

import (
	"fmt"

	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/vm"
)

func (p *Interop) IsException(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsException, receiver)
	return ex.IsException(raw)
}

// ThrowException returns the error that raises receiver in the guest.
func (p *Interop) ThrowException(receiver *vm.Object) error {
	raw, ex, _ := p.receiver(opThrowException, receiver)
	err := ex.ThrowException(raw)
	if err == nil {
		translateLog.Criticalf("throwException on %T returned without throwing", raw)
		panic(fmt.Sprintf("polyglot: throwException on %T returned without throwing", raw))
	}
	return p.translate(err)
}

func (p *Interop) GetExceptionType(receiver *vm.Object) (interop.ExceptionType, error) {
	raw, ex, _ := p.receiver(opGetExceptionType, receiver)
	t, err := ex.GetExceptionType(raw)
	return t, p.translate(err)
}

func (p *Interop) IsExceptionIncompleteSource(receiver *vm.Object) (bool, error) {
	raw, ex, _ := p.receiver(opIsExceptionIncompleteSource, receiver)
	b, err := ex.IsExceptionIncompleteSource(raw)
	return b, p.translate(err)
}

func (p *Interop) GetExceptionExitStatus(receiver *vm.Object) (int, error) {
	raw, ex, _ := p.receiver(opGetExceptionExitStatus, receiver)
	status, err := ex.GetExceptionExitStatus(raw)
	return status, p.translate(err)
}

func (p *Interop) HasExceptionCause(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasExceptionCause, receiver)
	return ex.HasExceptionCause(raw)
}

// GetExceptionCause returns the cause wrapped as an exception.
func (p *Interop) GetExceptionCause(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetExceptionCause, receiver)
	cause, err := ex.GetExceptionCause(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return p.wrapException(cause), nil
}

func (p *Interop) HasExceptionMessage(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasExceptionMessage, receiver)
	return ex.HasExceptionMessage(raw)
}

func (p *Interop) GetExceptionMessage(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetExceptionMessage, receiver)
	msg, err := ex.GetExceptionMessage(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(msg), nil
}

func (p *Interop) HasExceptionStackTrace(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasExceptionStackTrace, receiver)
	return ex.HasExceptionStackTrace(raw)
}

func (p *Interop) GetExceptionStackTrace(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetExceptionStackTrace, receiver)
	trace, err := ex.GetExceptionStackTrace(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(trace), nil
}
