package domain

type SnapshotKind string

const (
	// SnapshotFullTerm splits ownership as if the loan ran to maturity.
	SnapshotFullTerm SnapshotKind = "full-term"
	// SnapshotPointInTime splits ownership by principal actually paid so far.
	SnapshotPointInTime SnapshotKind = "point-in-time"
)

type OwnershipShare struct {
	BuyerID            string  `json:"buyerId"`
	CapitalContributed float64 `json:"capitalContributed"`
	Percentage         float64 `json:"percentage"`
}

// OwnershipSnapshot is derived from buyer contributions and never stored.
type OwnershipSnapshot struct {
	Kind          SnapshotKind     `json:"kind"`
	ElapsedMonths int              `json:"elapsedMonths"`
	PrincipalPaid float64          `json:"principalPaid"`
	TotalCapital  float64          `json:"totalCapital"`
	Shares        []OwnershipShare `json:"shares"`
}

// Share returns the entry for buyerID, or a zero share when the buyer is absent.
func (s OwnershipSnapshot) Share(buyerID string) OwnershipShare {
	for _, sh := range s.Shares {
		if sh.BuyerID == buyerID {
			return sh
		}
	}
	return OwnershipShare{BuyerID: buyerID}
}
