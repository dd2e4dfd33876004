package domain

// BanStatus is the outcome of one group-ban attempt.
type BanStatus string

const (
	// BanStatusNewlyBanned indicates the ban call succeeded and the user was not banned before.
	BanStatusNewlyBanned BanStatus = "NEWLY_BANNED"
	// BanStatusAlreadyBanned indicates the remote API reported the user as banned already.
	// The user is still marked processed since the desired end state holds.
	BanStatusAlreadyBanned BanStatus = "ALREADY_BANNED"
	// BanStatusAlreadyProcessed indicates the user was found in the processed set and skipped.
	BanStatusAlreadyProcessed BanStatus = "ALREADY_PROCESSED"
	// BanStatusFailed indicates the ban call failed; the user stays unprocessed for a future run.
	BanStatusFailed BanStatus = "FAILED"
)

// BlockStatus is the outcome of one account-block attempt.
type BlockStatus string

const (
	// BlockStatusBlocked indicates the block call succeeded.
	BlockStatusBlocked BlockStatus = "BLOCKED"
	// BlockStatusAlreadyProcessed indicates the user was found in the processed set and skipped.
	BlockStatusAlreadyProcessed BlockStatus = "ALREADY_PROCESSED"
	// BlockStatusFailed indicates the block call failed; the user stays unprocessed for a future run.
	BlockStatusFailed BlockStatus = "FAILED"
)
