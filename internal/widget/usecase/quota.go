package usecase

import (
	"context"
	"strings"
	"time"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
)

// quotaRetention keeps a day's counter this long after the day ends.
const quotaRetention = 48 * time.Hour

// checkQuota counts one use of w for rc today and fails when the daily quota was already reached.
func (uc *implUseCase) checkQuota(ctx context.Context, w widget.Widget, rc model.ReportContext) error {
	var quota *int64
	if limit, ok := uc.cfg.Quotas[w.Name()]; ok {
		quota = &limit
	}

	now := uc.now().UTC()
	exceeded, err := uc.redisRepo.CheckAndIncrement(ctx, repository.CheckQuotaOptions{
		Key:      quotaKey(w.Name(), rc, now),
		Quota:    quota,
		ExpireAt: quotaExpireAt(now),
	})
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.checkQuota: %v", err)
		return err
	}
	if exceeded {
		uc.l.Warnf(ctx, "widget.usecase.checkQuota: %s exceeded its daily quota for %s", w.Name(), rc.Key())
		return widget.ErrQuotaExceeded
	}
	return nil
}

// quotaKey is quota:<widget path with ':'>:<kind>:<id>:<YYYY-MM-DD>.
func quotaKey(name string, rc model.ReportContext, now time.Time) string {
	return "quota:" + strings.ReplaceAll(name, "/", ":") + ":" + rc.Key() + ":" + now.Format("2006-01-02")
}

// quotaExpireAt is the end of the UTC day of now plus quotaRetention.
func quotaExpireAt(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC).Add(quotaRetention)
}
