package service

import (
	"context"

	"go.uber.org/zap"
)

// SweepReport summarizes one consistency pass between the store and the
// identity pool.
type SweepReport struct {
	Checked         int      `json:"checked"`
	MarkedInactive  []string `json:"marked_inactive"`
	OrphanAccounts  []string `json:"orphan_accounts"`
	FailedToInspect []string `json:"failed_to_inspect"`
}

// SweepIdentities walks every store record and every identity account and
// repairs divergence: records whose account disappeared are marked inactive,
// accounts with no record are reported. It never deletes anything on its own.
func (s *UserService) SweepIdentities(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	users, err := s.store.List(ctx)
	if err != nil {
		return report, err
	}
	usernames, err := s.idp.ListUsernames(ctx)
	if err != nil {
		return report, err
	}

	known := make(map[string]bool, len(usernames))
	for _, n := range usernames {
		known[n] = true
	}

	linked := make(map[string]bool, len(users))
	for _, u := range users {
		report.Checked++
		if u.CognitoUsername == "" {
			continue
		}
		linked[u.CognitoUsername] = true
		if known[u.CognitoUsername] {
			continue
		}
		if err := s.store.MarkInactive(ctx, u.ID); err != nil {
			s.log.Error("sweep: mark inactive failed", zap.String("id", u.ID), zap.Error(err))
			report.FailedToInspect = append(report.FailedToInspect, u.ID)
			continue
		}
		s.log.Warn("sweep: identity account gone, user marked inactive",
			zap.String("id", u.ID), zap.String("username", u.CognitoUsername))
		report.MarkedInactive = append(report.MarkedInactive, u.ID)
	}

	for _, n := range usernames {
		if !linked[n] {
			s.log.Warn("sweep: identity account has no user record", zap.String("username", n))
			report.OrphanAccounts = append(report.OrphanAccounts, n)
		}
	}

	return report, nil
}
