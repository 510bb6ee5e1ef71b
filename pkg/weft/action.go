package weft

// Action is a deferred, readiness-gated effect. Like signals, actions are
// created at the call site and live for a single traversal.
//
// Perform must call the intermediary exactly once, after all upstream reads
// and before any writes the action itself performs. This latch ordering
// lets composed actions sequence their captures before any effect becomes
// visible.
type Action interface {
	// Ready reports whether the action can fire.
	Ready() bool

	// Perform runs the action. intermediary may be nil.
	Perform(intermediary func()) error
}

// Action1 is an action that consumes one argument.
type Action1[A any] interface {
	Ready() bool
	Perform(intermediary func(), arg A) error
}

// PerformAction runs a if it is ready; otherwise it is a no-op.
func PerformAction(a Action) error {
	if a.Ready() {
		return a.Perform(nil)
	}
	return nil
}

func callIntermediary(intermediary func()) {
	if intermediary != nil {
		intermediary()
	}
}

// actionPair sequences two actions.
type actionPair struct {
	first, second Action
}

// Seq combines two actions into one that performs them in sequence. It is
// ready when both are; both actions' writes land within the one perform, so
// they are visible atomically from the outside.
func Seq(first, second Action) Action {
	return actionPair{first: first, second: second}
}

func (a actionPair) Ready() bool {
	return a.first.Ready() && a.second.Ready()
}

func (a actionPair) Perform(intermediary func()) error {
	var firstErr error
	// The second action's intermediary performs the first, so every read
	// (second's, then first's, then the caller's intermediary) precedes
	// every write (first's, then second's).
	err := a.second.Perform(func() {
		firstErr = a.first.Perform(intermediary)
	})
	if firstErr != nil {
		return firstErr
	}
	return err
}

// boundAction supplies an action's leftmost argument from a signal.
type boundAction[A any] struct {
	action Action1[A]
	signal Readable[A]
}

// Bind consumes an action's argument from a readable signal. The result is
// ready when both the action is ready and the signal has a value; the
// signal is read before the action's own reads.
func Bind[A any](action Action1[A], signal Readable[A]) Action {
	return boundAction[A]{action: action, signal: signal}
}

func (a boundAction[A]) Ready() bool {
	return a.action.Ready() && a.signal.HasValue()
}

func (a boundAction[A]) Perform(intermediary func()) error {
	return a.action.Perform(intermediary, a.signal.Read())
}

// copyAction writes a source signal's value to a sink.
type copyAction[T any] struct {
	sink   Writable[T]
	source Readable[T]
}

// Copy creates an action that sets sink to source's value. It is ready
// when source has a value and sink is ready to write; the read happens
// before the intermediary, the write after.
func Copy[T any](sink Writable[T], source Readable[T]) Action {
	return copyAction[T]{sink: sink, source: source}
}

func (a copyAction[T]) Ready() bool {
	return a.source.HasValue() && a.sink.ReadyToWrite()
}

func (a copyAction[T]) Perform(intermediary func()) error {
	v := a.source.Read()
	callIntermediary(intermediary)
	return a.sink.Write(v)
}

// AddAssign lifts compound assignment: the action sets a to a + b.
func AddAssign[T Number](a Duplex[T], b Readable[T]) Action {
	return Copy[T](a, Add[T](a, b))
}

// SubAssign sets a to a - b.
func SubAssign[T Number](a Duplex[T], b Readable[T]) Action {
	return Copy[T](a, Sub[T](a, b))
}

// Increment adds one to a.
func Increment[T Number](a Duplex[T]) Action {
	return AddAssign[T](a, Value(T(1)))
}

// Decrement subtracts one from a.
func Decrement[T Number](a Duplex[T]) Action {
	return SubAssign[T](a, Value(T(1)))
}

// Toggle creates an action that flips a boolean signal.
func Toggle(flag Duplex[bool]) Action {
	return Copy[bool](flag, Not(flag))
}

// pushBackAction appends its argument to a slice signal.
type pushBackAction[E any] struct {
	container Duplex[[]E]
}

// PushBack creates an action that takes an item and appends it to the
// container signal's slice.
func PushBack[E any](container Duplex[[]E]) Action1[E] {
	return pushBackAction[E]{container: container}
}

func (a pushBackAction[E]) Ready() bool {
	return a.container.HasValue() && a.container.ReadyToWrite()
}

func (a pushBackAction[E]) Perform(intermediary func(), item E) error {
	src := a.container.Read()
	callIntermediary(intermediary)
	dst := make([]E, len(src), len(src)+1)
	copy(dst, src)
	return a.container.Write(append(dst, item))
}

// funcAction defines an action by a readiness predicate and an effect.
type funcAction struct {
	ready   func() bool
	perform func() error
}

// MakeAction builds an action from callbacks. A nil ready means always
// ready.
func MakeAction(ready func() bool, perform func() error) Action {
	return funcAction{ready: ready, perform: perform}
}

func (a funcAction) Ready() bool {
	return a.ready == nil || a.ready()
}

func (a funcAction) Perform(intermediary func()) error {
	callIntermediary(intermediary)
	return a.perform()
}

// funcAction1 is the one-argument form of funcAction.
type funcAction1[A any] struct {
	ready   func() bool
	perform func(A) error
}

// MakeAction1 builds a one-argument action from callbacks.
func MakeAction1[A any](ready func() bool, perform func(A) error) Action1[A] {
	return funcAction1[A]{ready: ready, perform: perform}
}

func (a funcAction1[A]) Ready() bool {
	return a.ready == nil || a.ready()
}

func (a funcAction1[A]) Perform(intermediary func(), arg A) error {
	callIntermediary(intermediary)
	return a.perform(arg)
}
