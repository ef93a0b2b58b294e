package utils

import (
	logger "log"
	"reflect"

	"github.com/fatih/color"
)

func Log[T any](msg string, args ...T) {
	logger.Printf(color.MagentaString(msg), toValues(args)...)
}

func LogRED[T any](msg string, args ...T) {
	logger.Printf(color.RedString(msg), toValues(args)...)
}

// Logf is the mixed-argument variant, plain color.
func Logf(msg string, args ...interface{}) {
	logger.Printf(msg, args...)
}

func toValues[T any](args []T) []interface{} {
	values := make([]interface{}, len(args))
	for i, arg := range args {
		values[i] = reflect.ValueOf(arg).Interface()
	}
	return values
}
