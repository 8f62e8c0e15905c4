package controller

import "context"

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(ctx context.Context, title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, title, message string)

func (f NotifierFunc) Notify(ctx context.Context, title, message string) { f(ctx, title, message) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string) {}
