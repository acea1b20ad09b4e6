package dynamo

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func numberAttr(n int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func numberKey(name string, n int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: numberAttr(n)}
}
