package author

import (
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

var (
	ErrAuthorNotFound = apperrors.NotFound("Author")

	ErrAuthorDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Author with this AuthID already exists")

	ErrHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "Cannot delete author with associated books")

	ErrSearchCriteriaRequired = apperrors.Validation("At least one search parameter (q, country, min_books) is required")
)
