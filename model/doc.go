// Package model groups the plain data structures of the simulator: the word
// arena, FIFO queues, process control blocks, mutexes and the variable table.
// Packages under model hold state only; scheduling and execution live in
// service and runtime.
package model
