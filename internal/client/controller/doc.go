// Package controller drives the life cycle of a workout video: pick a
// source file, send it for processing, review the result and then keep it
// in the library, export it to the gallery or throw it away.
//
// The Controller holds exactly one State at a time. Operations are only
// accepted in the states that offer them (otherwise ErrInvalidTransition)
// and only one operation may run at a time (otherwise ErrBusy). Failures
// are reported to the user through a Notifier and returned to the caller.
//
//	Idle --Upload--> Selected --> Processing --ok--> Ready
//	                                        --err--> Idle
//	Idle|Ready --PlayFromLibrary--> Ready (from library)
//	Ready --SaveToLibrary--> SavedToLibrary --> Idle
//	Ready --SaveToGallery--> SavedToGallery --> Idle
//	Ready --Discard--> Discarded --> Idle
package controller
