// SPDX-License-Identifier: MIT
//
// Copyright (C) 2021 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"errors"
	"fmt"
)

var (
	errNoPanic        = errors.New("no panic")
	errNoPanicMessage = errors.New("panic but no message")
)

func recoverPanic(f func()) (report interface{}) {
	defer func() {
		report = recover()
	}()
	f()
	return nil
}

// ExpectPanic executes the function f with the expectation to recover from a panic. If no panic occurred or if the
// panic message is not the one expected, ExpectPanic returns (false, error). A nil expectedError accepts any panic.
func ExpectPanic(expectedError error, f func()) (bool, error) {
	report := recoverPanic(f)
	if report == nil {
		return false, errNoPanic
	}
	if expectedError == nil {
		return true, nil
	}

	var msg string
	switch r := report.(type) {
	case error:
		msg = r.Error()
	case string:
		msg = r
	default:
		msg = fmt.Sprintf("%v", r)
	}
	if msg == "" {
		return false, errNoPanicMessage
	}
	if msg != expectedError.Error() {
		return false, fmt.Errorf("expected %q, got: %q", expectedError, msg)
	}
	return true, nil
}
