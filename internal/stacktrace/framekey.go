package stacktrace

// FrameKey is the identity of a bar on the timeline. Two keys are equal
// when function name, file name, pid and tid all match; line number,
// locals, and module are intentionally excluded so a bar tracks a function
// invocation rather than a single line.
type FrameKey struct {
	FunctionName string
	FileName     string
	Pid          Pid
	Tid          Tid
}

// KeyFor derives the FrameKey a Frame would hold on thread (pid, tid).
func KeyFor(f Frame, pid Pid, tid Tid) FrameKey {
	return FrameKey{
		FunctionName: f.FunctionName,
		FileName:     f.FileName,
		Pid:          pid,
		Tid:          tid,
	}
}

// ShouldMerge reports whether an existing key still identifies f: true iff
// function name and file name match. Line number, module, and locals are
// never consulted — a record keeps its original start until closed even if
// later samples show a different line in the same function.
func (k FrameKey) ShouldMerge(f Frame) bool {
	return k.FunctionName == f.FunctionName && k.FileName == f.FileName
}
