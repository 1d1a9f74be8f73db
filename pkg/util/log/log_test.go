package log

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"runtime"
	"testing"
)

func TestRelativeFilePathPrettier(t *testing.T) {
	pc := make([]uintptr, 1)
	runtime.Callers(1, pc)
	currentFrames := runtime.CallersFrames(pc)
	currentFunc, _ := currentFrames.Next()
	currentFunc.Line = 11 // so it's not too fragile

	for _, tt := range []struct {
		name         string
		f            *runtime.Frame
		wantFunction string
		wantFile     string
	}{
		{
			name:         "current function",
			f:            &currentFunc,
			wantFunction: "log.TestRelativeFilePathPrettier()",
			wantFile:     " pkg/util/log/log_test.go:11",
		},
		{
			name:         "empty",
			f:            &runtime.Frame{},
			wantFunction: "()",
			wantFile:     " :0",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			function, file := RelativeFilePathPrettier(tt.f)
			if function != tt.wantFunction {
				t.Errorf("%s != %s", function, tt.wantFunction)
			}
			if file != tt.wantFile {
				t.Errorf("%s != %s", file, tt.wantFile)
			}
		})
	}
}
