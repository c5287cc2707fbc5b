// Package clock stamps events and messages with wall time; tests freeze it
// by replacing NowFunc.
package clock

import "time"

// NowFunc returns current time.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
