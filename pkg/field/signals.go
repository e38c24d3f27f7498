package field

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Signals for binding lifecycle events.
var (
	SignalFieldBound    = capitan.NewSignal("formmask.field.bound", "Field binding created")
	SignalFieldChanged  = capitan.NewSignal("formmask.field.changed", "Field change processed")
	SignalMaskSwitched  = capitan.NewSignal("formmask.mask.switched", "Active mask pattern changed")
	SignalFieldRejected = capitan.NewSignal("formmask.field.rejected", "Inserted characters were not admitted")
)

// Keys for typed event data.
var (
	KeyField     = capitan.NewStringKey("field")
	KeyKind      = capitan.NewStringKey("kind")
	KeyPattern   = capitan.NewStringKey("pattern")
	KeyActive    = capitan.NewStringKey("active")
	KeyErrorKind = capitan.NewStringKey("error_kind")
	KeyLength    = capitan.NewIntKey("length")
	KeyDropped   = capitan.NewIntKey("dropped")
)

func emitFieldBound(ctx context.Context, name, kind, pattern string) {
	capitan.Emit(ctx, SignalFieldBound,
		KeyField.Field(name),
		KeyKind.Field(kind),
		KeyPattern.Field(pattern),
	)
}

func emitFieldChanged(ctx context.Context, name, kind, errorKind string, length int) {
	capitan.Emit(ctx, SignalFieldChanged,
		KeyField.Field(name),
		KeyKind.Field(kind),
		KeyErrorKind.Field(errorKind),
		KeyLength.Field(length),
	)
}

func emitMaskSwitched(ctx context.Context, name, active, pattern string) {
	capitan.Emit(ctx, SignalMaskSwitched,
		KeyField.Field(name),
		KeyActive.Field(active),
		KeyPattern.Field(pattern),
	)
}

func emitFieldRejected(ctx context.Context, name, kind string, dropped int) {
	capitan.Emit(ctx, SignalFieldRejected,
		KeyField.Field(name),
		KeyKind.Field(kind),
		KeyDropped.Field(dropped),
	)
}
