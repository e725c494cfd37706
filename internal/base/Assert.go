package base

import "fmt"

/***************************************
 * Assertions
 ***************************************/

var LogAssert = NewLogCategory("Assert")

func Panicf(msg string, args ...interface{}) {
	Panic(fmt.Errorf(msg, args...))
}

func Panic(err error) {
	FlushLog()
	panic(fmt.Errorf("[PANIC] %v", err))
}

func Assert(pred func() bool) {
	if success := pred(); !success {
		Panicf("failed assertion")
	}
}
func AssertErr(pred func() error) {
	if err := pred(); err != nil {
		Panic(err)
	}
}
func UnreachableCode() {
	Panicf("unreachable code")
}
func UnexpectedValue(x interface{}) {
	Panicf("unexpected value: <%T> %#v", x, x)
}
