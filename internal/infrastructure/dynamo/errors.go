package dynamo

import (
	"errors"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
)

// classify traduce un error del cliente DynamoDB al sentinel de dominio correspondiente,
// conservando el error original en la cadena.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if sentinel := sentinelFor(err); sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sentinelFor(err error) error {
	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return domain.ErrStoreUnavailable
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException", "InvalidSignatureException",
			"ExpiredTokenException", "MissingAuthenticationTokenException":
			return domain.ErrPermissionDenied
		case "ValidationException", "SerializationException":
			return domain.ErrMalformedInput
		case "ResourceNotFoundException", "ProvisionedThroughputExceededException",
			"RequestLimitExceeded", "ThrottlingException", "InternalServerError",
			"ServiceUnavailable", "LimitExceededException":
			return domain.ErrStoreUnavailable
		}
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ErrStoreUnavailable
	}
	return nil
}
