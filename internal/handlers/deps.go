package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/account-viewer/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AccountSvc      AccountService
}
