package channel

import (
	"fmt"

	"github.com/ZentaChain/erldist/pkg/term"
)

// EncodeControl builds the control tuple for msg. Payload messages are
// split by the caller: the tuple returned here never includes a trailing
// payload term, since that travels separately in the same frame.
func EncodeControl(msg Message) (term.Tuple, error) {
	kind := term.FixInteger(msg.Kind())
	switch m := msg.(type) {
	case Link:
		return term.Tuple{kind, m.From, m.To}, nil
	case Send:
		return term.Tuple{kind, orNil(m.Unused), m.To}, nil
	case Exit:
		return term.Tuple{kind, m.From, m.To, m.Reason}, nil
	case Unlink:
		return term.Tuple{kind, m.From, m.To}, nil
	case NodeLink:
		return term.Tuple{kind}, nil
	case RegSend:
		return term.Tuple{kind, m.From, orNil(m.Unused), m.ToName}, nil
	case GroupLeader:
		return term.Tuple{kind, m.From, m.To}, nil
	case Exit2:
		return term.Tuple{kind, m.From, m.To, m.Reason}, nil
	case SendTT:
		return term.Tuple{kind, orNil(m.Unused), m.To, m.TraceToken}, nil
	case ExitTT:
		return term.Tuple{kind, m.From, m.To, m.TraceToken, m.Reason}, nil
	case RegSendTT:
		return term.Tuple{kind, m.From, orNil(m.Unused), m.ToName, m.TraceToken}, nil
	case Exit2TT:
		return term.Tuple{kind, m.From, m.To, m.TraceToken, m.Reason}, nil
	case MonitorP:
		return term.Tuple{kind, m.From, m.To, m.Ref}, nil
	case DemonitorP:
		return term.Tuple{kind, m.From, m.To, m.Ref}, nil
	case MonitorPExit:
		return term.Tuple{kind, m.From, m.To, m.Ref, m.Reason}, nil
	case SendSender:
		return term.Tuple{kind, m.From, m.To}, nil
	case SendSenderTT:
		return term.Tuple{kind, m.From, m.To, m.TraceToken}, nil
	case PayloadExit:
		return term.Tuple{kind, m.From, m.To}, nil
	case PayloadExit2:
		return term.Tuple{kind, m.From, m.To}, nil
	case PayloadExitTT:
		return term.Tuple{kind, m.From, m.To, m.TraceToken}, nil
	case PayloadExit2TT:
		return term.Tuple{kind, m.From, m.To, m.TraceToken}, nil
	case PayloadMonitorPExit:
		return term.Tuple{kind, m.From, m.To, m.Ref}, nil
	case SpawnRequest:
		return term.Tuple{kind, m.ReqID, m.From, m.GroupLeader, m.MFA, m.ArgList}, nil
	case SpawnRequestTT:
		return term.Tuple{kind, m.ReqID, m.From, m.GroupLeader, m.MFA, m.ArgList, m.TraceToken}, nil
	case SpawnReply:
		return term.Tuple{kind, m.ReqID, m.To, m.Flags, m.Result}, nil
	case SpawnReplyTT:
		return term.Tuple{kind, m.ReqID, m.To, m.Flags, m.Result, m.TraceToken}, nil
	case AliasSend:
		return term.Tuple{kind, m.From, m.Alias}, nil
	case AliasSendTT:
		return term.Tuple{kind, m.From, m.Alias, m.TraceToken}, nil
	case UnlinkId:
		return term.Tuple{kind, term.FixInteger(m.ID), m.From, m.To}, nil
	case UnlinkIdAck:
		return term.Tuple{kind, term.FixInteger(m.ID), m.From, m.To}, nil
	default:
		return nil, newError(ErrUnknownKind, fmt.Sprintf("%T has no control encoding", msg))
	}
}

func orNil(t term.Term) term.Term {
	if t == nil {
		return term.Atom("")
	}
	return t
}

// DecodeControl rebuilds a Message from a decoded control tuple. hasPayload
// reports whether the caller must still read a trailing payload term and
// attach it before the Message is usable.
func DecodeControl(tuple term.Tuple) (msg Message, hasPayload bool, err error) {
	if len(tuple) == 0 {
		return nil, false, newError(ErrUnknownKind, "empty control tuple")
	}
	kindField, ok := tuple[0].(term.FixInteger)
	if !ok {
		return nil, false, newError(ErrUnknownKind, fmt.Sprintf("control tuple tag is %T, not an integer", tuple[0]))
	}
	kind := Kind(kindField)

	fields := tuple[1:]
	pid := func(i int) (term.Pid, error) { return asPid(fields, i) }
	ref := func(i int) (term.Reference, error) { return asRef(fields, i) }
	atom := func(i int) (term.Atom, error) { return asAtom(fields, i) }
	any := func(i int) (term.Term, error) { return asAny(fields, i) }
	tup := func(i int) (term.Tuple, error) { return asTuple(fields, i) }
	fixint := func(i int) (term.FixInteger, error) { return asFixInt(fields, i) }

	switch kind {
	case KindLink:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return Link{From: from, To: to}, false, nil

	case KindSend:
		unused, err1 := any(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return Send{Unused: unused, To: to}, true, nil

	case KindExit:
		from, err1 := pid(0)
		to, err2 := pid(1)
		reason, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return Exit{From: from, To: to, Reason: reason}, false, nil

	case KindUnlink:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return Unlink{From: from, To: to}, false, nil

	case KindNodeLink:
		return NodeLink{}, false, nil

	case KindRegSend:
		from, err1 := pid(0)
		unused, err2 := any(1)
		toName, err3 := atom(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return RegSend{From: from, Unused: unused, ToName: toName}, true, nil

	case KindGroupLeader:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return GroupLeader{From: from, To: to}, false, nil

	case KindExit2:
		from, err1 := pid(0)
		to, err2 := pid(1)
		reason, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return Exit2{From: from, To: to, Reason: reason}, false, nil

	case KindSendTT:
		unused, err1 := any(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return SendTT{Unused: unused, To: to, TraceToken: tt}, true, nil

	case KindExitTT:
		from, err1 := pid(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		reason, err4 := any(3)
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, false, err
		}
		return ExitTT{From: from, To: to, TraceToken: tt, Reason: reason}, false, nil

	case KindRegSendTT:
		from, err1 := pid(0)
		unused, err2 := any(1)
		toName, err3 := atom(2)
		tt, err4 := any(3)
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, false, err
		}
		return RegSendTT{From: from, Unused: unused, ToName: toName, TraceToken: tt}, true, nil

	case KindExit2TT:
		from, err1 := pid(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		reason, err4 := any(3)
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, false, err
		}
		return Exit2TT{From: from, To: to, TraceToken: tt, Reason: reason}, false, nil

	case KindMonitorP:
		from, err1 := pid(0)
		to, err2 := any(1)
		r, err3 := ref(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return MonitorP{From: from, To: to, Ref: r}, false, nil

	case KindDemonitorP:
		from, err1 := pid(0)
		to, err2 := any(1)
		r, err3 := ref(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return DemonitorP{From: from, To: to, Ref: r}, false, nil

	case KindMonitorPExit:
		from, err1 := any(0)
		to, err2 := pid(1)
		r, err3 := ref(2)
		reason, err4 := any(3)
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, false, err
		}
		return MonitorPExit{From: from, To: to, Ref: r, Reason: reason}, false, nil

	case KindSendSender:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return SendSender{From: from, To: to}, true, nil

	case KindSendSenderTT:
		from, err1 := pid(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return SendSenderTT{From: from, To: to, TraceToken: tt}, true, nil

	case KindPayloadExit:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return PayloadExit{From: from, To: to}, true, nil

	case KindPayloadExit2:
		from, err1 := pid(0)
		to, err2 := pid(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return PayloadExit2{From: from, To: to}, true, nil

	case KindPayloadExitTT:
		from, err1 := pid(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return PayloadExitTT{From: from, To: to, TraceToken: tt}, true, nil

	case KindPayloadExit2TT:
		from, err1 := pid(0)
		to, err2 := pid(1)
		tt, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return PayloadExit2TT{From: from, To: to, TraceToken: tt}, true, nil

	case KindPayloadMonitorPExit:
		from, err1 := any(0)
		to, err2 := pid(1)
		r, err3 := ref(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return PayloadMonitorPExit{From: from, To: to, Ref: r}, true, nil

	case KindSpawnRequest:
		reqID, err1 := ref(0)
		from, err2 := pid(1)
		gl, err3 := pid(2)
		mfa, err4 := tup(3)
		args, err5 := any(4)
		if err := firstErr(err1, err2, err3, err4, err5); err != nil {
			return nil, false, err
		}
		return SpawnRequest{ReqID: reqID, From: from, GroupLeader: gl, MFA: mfa, ArgList: args}, false, nil

	case KindSpawnRequestTT:
		reqID, err1 := ref(0)
		from, err2 := pid(1)
		gl, err3 := pid(2)
		mfa, err4 := tup(3)
		args, err5 := any(4)
		tt, err6 := any(5)
		if err := firstErr(err1, err2, err3, err4, err5, err6); err != nil {
			return nil, false, err
		}
		return SpawnRequestTT{ReqID: reqID, From: from, GroupLeader: gl, MFA: mfa, ArgList: args, TraceToken: tt}, false, nil

	case KindSpawnReply:
		reqID, err1 := ref(0)
		to, err2 := pid(1)
		flags, err3 := fixint(2)
		result, err4 := any(3)
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, false, err
		}
		return SpawnReply{ReqID: reqID, To: to, Flags: flags, Result: result}, false, nil

	case KindSpawnReplyTT:
		reqID, err1 := ref(0)
		to, err2 := pid(1)
		flags, err3 := fixint(2)
		result, err4 := any(3)
		tt, err5 := any(4)
		if err := firstErr(err1, err2, err3, err4, err5); err != nil {
			return nil, false, err
		}
		return SpawnReplyTT{ReqID: reqID, To: to, Flags: flags, Result: result, TraceToken: tt}, false, nil

	case KindAliasSend:
		from, err1 := pid(0)
		alias, err2 := ref(1)
		if err := firstErr(err1, err2); err != nil {
			return nil, false, err
		}
		return AliasSend{From: from, Alias: alias}, true, nil

	case KindAliasSendTT:
		from, err1 := pid(0)
		alias, err2 := ref(1)
		tt, err3 := any(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return AliasSendTT{From: from, Alias: alias, TraceToken: tt}, true, nil

	case KindUnlinkId:
		id, err1 := fixint(0)
		from, err2 := pid(1)
		to, err3 := pid(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return UnlinkId{ID: uint64(id), From: from, To: to}, false, nil

	case KindUnlinkIdAck:
		id, err1 := fixint(0)
		from, err2 := pid(1)
		to, err3 := pid(2)
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, false, err
		}
		return UnlinkIdAck{ID: uint64(id), From: from, To: to}, false, nil

	default:
		return nil, false, newError(ErrUnknownKind, fmt.Sprintf("unknown control message kind %d", kind))
	}
}

// attachPayload returns msg with its payload term set to p, for the
// kinds that carry one. Called after the caller has decoded the trailing
// payload term DecodeControl said to expect.
func attachPayload(msg Message, p term.Term) Message {
	switch m := msg.(type) {
	case Send:
		m.Message = p
		return m
	case RegSend:
		m.Message = p
		return m
	case SendTT:
		m.Message = p
		return m
	case RegSendTT:
		m.Message = p
		return m
	case SendSender:
		m.Message = p
		return m
	case SendSenderTT:
		m.Message = p
		return m
	case PayloadExit:
		m.Reason = p
		return m
	case PayloadExit2:
		m.Reason = p
		return m
	case PayloadExitTT:
		m.Reason = p
		return m
	case PayloadExit2TT:
		m.Reason = p
		return m
	case PayloadMonitorPExit:
		m.Reason = p
		return m
	case AliasSend:
		m.Message = p
		return m
	case AliasSendTT:
		m.Message = p
		return m
	default:
		return msg
	}
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func asAny(fields []term.Term, i int) (term.Term, error) {
	if i >= len(fields) {
		return nil, newError(ErrUnknownKind, fmt.Sprintf("control tuple missing field %d", i))
	}
	return fields[i], nil
}

func asPid(fields []term.Term, i int) (term.Pid, error) {
	v, err := asAny(fields, i)
	if err != nil {
		return term.Pid{}, err
	}
	p, ok := v.(term.Pid)
	if !ok {
		return term.Pid{}, newError(ErrDecode, fmt.Sprintf("field %d: expected Pid, got %T", i, v))
	}
	return p, nil
}

func asRef(fields []term.Term, i int) (term.Reference, error) {
	v, err := asAny(fields, i)
	if err != nil {
		return term.Reference{}, err
	}
	r, ok := v.(term.Reference)
	if !ok {
		return term.Reference{}, newError(ErrDecode, fmt.Sprintf("field %d: expected Reference, got %T", i, v))
	}
	return r, nil
}

func asAtom(fields []term.Term, i int) (term.Atom, error) {
	v, err := asAny(fields, i)
	if err != nil {
		return "", err
	}
	a, ok := v.(term.Atom)
	if !ok {
		return "", newError(ErrDecode, fmt.Sprintf("field %d: expected Atom, got %T", i, v))
	}
	return a, nil
}

func asTuple(fields []term.Term, i int) (term.Tuple, error) {
	v, err := asAny(fields, i)
	if err != nil {
		return nil, err
	}
	t, ok := v.(term.Tuple)
	if !ok {
		return nil, newError(ErrDecode, fmt.Sprintf("field %d: expected Tuple, got %T", i, v))
	}
	return t, nil
}

func asFixInt(fields []term.Term, i int) (term.FixInteger, error) {
	v, err := asAny(fields, i)
	if err != nil {
		return 0, err
	}
	n, ok := v.(term.FixInteger)
	if !ok {
		return 0, newError(ErrDecode, fmt.Sprintf("field %d: expected FixInteger, got %T", i, v))
	}
	return n, nil
}
