package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Award records a prize handed out by the draw endpoint. VoucherID is the id
// embedded in the signed voucher returned to the client.
type Award struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VoucherID string             `bson:"voucherId" json:"voucherId"`
	Prize     string             `bson:"prize" json:"prize"`
	ClientIP  string             `bson:"clientIp,omitempty" json:"-"`
	IssuedAt  time.Time          `bson:"issuedAt" json:"issuedAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}
