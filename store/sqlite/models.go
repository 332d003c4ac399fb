package sqlite

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/gatehouse/store"
)

// credentialRowID is the fixed primary key of the single credentials row.
const credentialRowID = "current"

type credentialModel struct {
	grove.BaseModel `grove:"table:gatehouse_credentials"`
	ID              string    `grove:"id,pk"`
	AccessToken     string    `grove:"access_token,notnull"`
	RefreshToken    string    `grove:"refresh_token,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func credentialsToModel(c store.Credentials) *credentialModel {
	return &credentialModel{
		ID:           credentialRowID,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		UpdatedAt:    time.Now().UTC(),
	}
}

func credentialsFromModel(m *credentialModel) store.Credentials {
	return store.Credentials{
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
	}
}
