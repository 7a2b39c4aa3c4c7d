package request

type TrackCopyRequest struct {
	CoinType string `json:"coin_type" binding:"required"`
}
