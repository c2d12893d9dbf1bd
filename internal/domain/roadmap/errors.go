package roadmap

import (
	"fmt"

	pkgerrors "github.com/yungbote/careerpath-backend/internal/pkg/errors"
)

var (
	ErrUserNotFound  = fmt.Errorf("user roadmap %w", pkgerrors.ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("roadmap item %w", pkgerrors.ErrNotFound)
	ErrInvalidStatus = fmt.Errorf("%w: status must be pending or completed", pkgerrors.ErrInvalidArgument)
)
