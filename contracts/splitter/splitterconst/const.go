package splitterconst

const (
	// MaxRecipients defines the maximum number of recipients allowed within
	// a single configuration. Distribution makes one transfer per recipient
	// in a single transaction, so the list must stay small.
	MaxRecipients = 16

	// ErrTimelockActive is thrown by `replace` before the configured
	// expiration time has come.
	ErrTimelockActive = "timelock active"
	// ErrLengthMismatch is thrown when recipient and weight lists differ
	// in length.
	ErrLengthMismatch = "recipients and weights length mismatch"
	// ErrNoRecipients is thrown on an attempt to install an empty
	// configuration.
	ErrNoRecipients = "no recipients"
	// ErrTooManyRecipients is thrown when the recipient list exceeds
	// MaxRecipients.
	ErrTooManyRecipients = "too many recipients"
	// ErrTransferFailed is thrown by `distribute` when any recipient
	// transfer fails, faulting the whole call.
	ErrTransferFailed = "recipient transfer failed"
)
