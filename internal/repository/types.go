package repository

import "time"

// GiftOrderListFilter 查询礼物订单列表的过滤条件
type GiftOrderListFilter struct {
	Page        int
	PageSize    int
	GiftType    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
