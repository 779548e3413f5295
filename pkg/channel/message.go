package channel

import "github.com/ZentaChain/erldist/pkg/term"

// Kind is the control-message selector: the first element of every
// control tuple. Values match the published distribution protocol's
// operation codes.
type Kind int

const (
	KindLink                Kind = 1
	KindSend                Kind = 2
	KindExit                Kind = 3
	KindUnlink              Kind = 4
	KindNodeLink            Kind = 5
	KindRegSend             Kind = 6
	KindGroupLeader         Kind = 7
	KindExit2               Kind = 8
	KindSendTT              Kind = 12
	KindExitTT              Kind = 13
	KindRegSendTT           Kind = 16
	KindExit2TT             Kind = 18
	KindMonitorP            Kind = 19
	KindDemonitorP          Kind = 20
	KindMonitorPExit        Kind = 21
	KindSendSender          Kind = 22
	KindSendSenderTT        Kind = 23
	KindPayloadExit         Kind = 24
	KindPayloadExitTT       Kind = 25
	KindPayloadExit2        Kind = 26
	KindPayloadExit2TT      Kind = 27
	KindPayloadMonitorPExit Kind = 28
	KindSpawnRequest        Kind = 29
	KindSpawnRequestTT      Kind = 30
	KindSpawnReply          Kind = 31
	KindSpawnReplyTT        Kind = 32
	KindAliasSend           Kind = 33
	KindAliasSendTT         Kind = 34
	KindUnlinkId            Kind = 35
	KindUnlinkIdAck         Kind = 36
)

// Message is the tagged sum over every control-message kind. Concrete
// types below are the variants; Encode/Decode in codec.go dispatch on
// them with a type switch rather than reflection.
type Message interface {
	Kind() Kind
}

// Payload is implemented by the message kinds that carry a Term
// immediately after their control tuple in the same frame.
type Payload interface {
	Message
	GetPayload() term.Term
}

type Link struct{ From, To term.Pid }

func (Link) Kind() Kind { return KindLink }

type Send struct {
	Unused  term.Term // historically a cookie atom; carried but ignored
	To      term.Pid
	Message term.Term
}

func (Send) Kind() Kind           { return KindSend }
func (s Send) GetPayload() term.Term { return s.Message }

type Exit struct {
	From, To term.Pid
	Reason   term.Term
}

func (Exit) Kind() Kind { return KindExit }

type Unlink struct{ From, To term.Pid }

func (Unlink) Kind() Kind { return KindUnlink }

type NodeLink struct{}

func (NodeLink) Kind() Kind { return KindNodeLink }

type RegSend struct {
	From    term.Pid
	Unused  term.Term
	ToName  term.Atom
	Message term.Term
}

func (RegSend) Kind() Kind              { return KindRegSend }
func (r RegSend) GetPayload() term.Term { return r.Message }

type GroupLeader struct{ From, To term.Pid }

func (GroupLeader) Kind() Kind { return KindGroupLeader }

type Exit2 struct {
	From, To term.Pid
	Reason   term.Term
}

func (Exit2) Kind() Kind { return KindExit2 }

type SendTT struct {
	Unused     term.Term
	To         term.Pid
	TraceToken term.Term
	Message    term.Term
}

func (SendTT) Kind() Kind              { return KindSendTT }
func (s SendTT) GetPayload() term.Term { return s.Message }

type ExitTT struct {
	From, To   term.Pid
	TraceToken term.Term
	Reason     term.Term
}

func (ExitTT) Kind() Kind { return KindExitTT }

type RegSendTT struct {
	From       term.Pid
	Unused     term.Term
	ToName     term.Atom
	TraceToken term.Term
	Message    term.Term
}

func (RegSendTT) Kind() Kind              { return KindRegSendTT }
func (r RegSendTT) GetPayload() term.Term { return r.Message }

type Exit2TT struct {
	From, To   term.Pid
	TraceToken term.Term
	Reason     term.Term
}

func (Exit2TT) Kind() Kind { return KindExit2TT }

// MonitorP's To is either a Pid or a registered-name Atom depending on
// whether the monitor targets a process or a name.
type MonitorP struct {
	From term.Pid
	To   term.Term
	Ref  term.Reference
}

func (MonitorP) Kind() Kind { return KindMonitorP }

type DemonitorP struct {
	From term.Pid
	To   term.Term
	Ref  term.Reference
}

func (DemonitorP) Kind() Kind { return KindDemonitorP }

type MonitorPExit struct {
	From   term.Term
	To     term.Pid
	Ref    term.Reference
	Reason term.Term
}

func (MonitorPExit) Kind() Kind { return KindMonitorPExit }

type SendSender struct {
	From, To term.Pid
	Message  term.Term
}

func (SendSender) Kind() Kind              { return KindSendSender }
func (s SendSender) GetPayload() term.Term { return s.Message }

type SendSenderTT struct {
	From, To   term.Pid
	TraceToken term.Term
	Message    term.Term
}

func (SendSenderTT) Kind() Kind              { return KindSendSenderTT }
func (s SendSenderTT) GetPayload() term.Term { return s.Message }

// PayloadExit and its siblings move Reason out of the control tuple and
// into the frame's trailing payload term, for exit reasons too large to
// carry inline economically.
type PayloadExit struct {
	From, To term.Pid
	Reason   term.Term
}

func (PayloadExit) Kind() Kind              { return KindPayloadExit }
func (p PayloadExit) GetPayload() term.Term { return p.Reason }

type PayloadExit2 struct {
	From, To term.Pid
	Reason   term.Term
}

func (PayloadExit2) Kind() Kind              { return KindPayloadExit2 }
func (p PayloadExit2) GetPayload() term.Term { return p.Reason }

type PayloadExitTT struct {
	From, To   term.Pid
	TraceToken term.Term
	Reason     term.Term
}

func (PayloadExitTT) Kind() Kind              { return KindPayloadExitTT }
func (p PayloadExitTT) GetPayload() term.Term { return p.Reason }

type PayloadExit2TT struct {
	From, To   term.Pid
	TraceToken term.Term
	Reason     term.Term
}

func (PayloadExit2TT) Kind() Kind              { return KindPayloadExit2TT }
func (p PayloadExit2TT) GetPayload() term.Term { return p.Reason }

type PayloadMonitorPExit struct {
	From   term.Term
	To     term.Pid
	Ref    term.Reference
	Reason term.Term
}

func (PayloadMonitorPExit) Kind() Kind              { return KindPayloadMonitorPExit }
func (p PayloadMonitorPExit) GetPayload() term.Term { return p.Reason }

// SpawnRequest carries its argument list inline in the control tuple
// rather than as a trailing payload: unlike Send/Exit variants, the
// protocol never grew a payload-carrying counterpart for spawn.
type SpawnRequest struct {
	ReqID       term.Reference
	From        term.Pid
	GroupLeader term.Pid
	MFA         term.Tuple // {Module, Function, Arity}
	ArgList     term.Term
}

func (SpawnRequest) Kind() Kind { return KindSpawnRequest }

type SpawnRequestTT struct {
	ReqID       term.Reference
	From        term.Pid
	GroupLeader term.Pid
	MFA         term.Tuple
	ArgList     term.Term
	TraceToken  term.Term
}

func (SpawnRequestTT) Kind() Kind { return KindSpawnRequestTT }

type SpawnReply struct {
	ReqID  term.Reference
	To     term.Pid
	Flags  term.FixInteger
	Result term.Term
}

func (SpawnReply) Kind() Kind { return KindSpawnReply }

type SpawnReplyTT struct {
	ReqID      term.Reference
	To         term.Pid
	Flags      term.FixInteger
	Result     term.Term
	TraceToken term.Term
}

func (SpawnReplyTT) Kind() Kind { return KindSpawnReplyTT }

type AliasSend struct {
	From    term.Pid
	Alias   term.Reference
	Message term.Term
}

func (AliasSend) Kind() Kind              { return KindAliasSend }
func (a AliasSend) GetPayload() term.Term { return a.Message }

type AliasSendTT struct {
	From       term.Pid
	Alias      term.Reference
	TraceToken term.Term
	Message    term.Term
}

func (AliasSendTT) Kind() Kind              { return KindAliasSendTT }
func (a AliasSendTT) GetPayload() term.Term { return a.Message }

type UnlinkId struct {
	ID       uint64
	From, To term.Pid
}

func (UnlinkId) Kind() Kind { return KindUnlinkId }

type UnlinkIdAck struct {
	ID       uint64
	From, To term.Pid
}

func (UnlinkIdAck) Kind() Kind { return KindUnlinkIdAck }

// Tick is never encoded as a control tuple: it is the zero-length frame
// itself. Channel.Recv consumes ticks internally to reset the inbound
// idle timer and never returns one to its caller; Tick exists so callers
// outside this package can still name the concept in logs and tests.
type Tick struct{}

func (Tick) Kind() Kind { return 0 }
