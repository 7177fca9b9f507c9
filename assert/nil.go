package assert

import "fmt"

func formatMsg(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func NotNil(obj any, format string, args ...interface{}) {
	if obj == nil {
		panic(formatMsg(format, args...))
	}
}

func IsNil(obj any, format string, args ...interface{}) {
	if obj != nil {
		panic(formatMsg(format, args...))
	}
}
