// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"context"

	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/store"
)

// ResolveReport closes a complaint after the operator acted on it. The
// record is removed; there is no resolved archive, matching how the queue
// has always worked.
func (service *Service) ResolveReport(context context.Context, reportID string) error {
	if _, ok := service.mirror.Report(reportID); !ok {
		return apperr.NotFound("report")
	}

	if err := service.store.Delete(context, store.CollReports, reportID); err != nil {
		return storeErr(err, "report")
	}

	service.afterMutation(context, store.CollReports)
	service.center.Publish("Report resolved", notify.SeveritySuccess)
	service.log.Info("report_resolved", "report_id", reportID)
	return nil
}

// DismissReport throws a complaint away without action. Storage-wise it is
// identical to resolving; the distinction is operator intent and the toast.
func (service *Service) DismissReport(context context.Context, reportID string) error {
	if _, ok := service.mirror.Report(reportID); !ok {
		return apperr.NotFound("report")
	}

	if err := service.store.Delete(context, store.CollReports, reportID); err != nil {
		return storeErr(err, "report")
	}

	service.afterMutation(context, store.CollReports)
	service.center.Publish("Report dismissed", notify.SeverityInfo)
	service.log.Info("report_dismissed", "report_id", reportID)
	return nil
}
