// Package stress drives an alloc.Heap through randomized and scripted
// allocate/free/resize sequences and checks what the caller can observe:
// returned pointers are aligned, live payloads never overlap and written
// contents survive every later operation.
//
// Run is the randomized driver used by cmd/memstress. Each iteration picks a
// size, allocates it, copies a pivot string into the payload, frees a random
// earlier slot and sometimes resizes the current one. Scenario replays the
// fixed allocate/free/reuse/relocate sequence.
package stress
