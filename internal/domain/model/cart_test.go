package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 「アクティブカートは1つ」はアプリ側の探索ではなくDBの部分ユニークで守る。
// このタグが消えると同時リクエストでカートが二重に作られる。
func TestCart_UserIDCarriesPartialUniqueIndex(t *testing.T) {
	f, ok := reflect.TypeOf(Cart{}).FieldByName("UserID")
	assert.True(t, ok)

	tag := f.Tag.Get("gorm")
	assert.True(t, strings.Contains(tag, "idx_carts_user_active"), tag)
	assert.True(t, strings.Contains(tag, "unique"), tag)
	assert.True(t, strings.Contains(tag, "where:is_active"), tag)
}
