// Package migrations holds the registered data migrations for the
// settings store. Importing the package is enough to register them.
package migrations

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/spoolkeeper/spoolkeeper/internal/db/controller/setting"
	"github.com/spoolkeeper/spoolkeeper/internal/extrafields"
	"github.com/spoolkeeper/spoolkeeper/internal/migrate"
)

func init() { //nolint: gochecknoinits
	migrate.Register(migrate.Migration{
		Version: "20260103120000",
		Name:    "add nfc_id extra field",
		Up:      upAddNFCIDExtraField,
		Down:    downAddNFCIDExtraField,
	})
}

// upAddNFCIDExtraField ensures the nfc_id field descriptor is present in
// the spool field registry, inserted first so it leads the display order.
// Existing installations keep every other field untouched.
func upAddNFCIDExtraField(tx *gorm.DB) error {
	var (
		list   extrafields.List
		exists bool
	)

	existing, err := setting.Get(tx, extrafields.SettingKeySpool)

	switch {
	case err == nil:
		exists = true

		if list, err = extrafields.DecodeList(existing.Value); err != nil {
			return pkgerrors.Wrap(err, "setting "+extrafields.SettingKeySpool)
		}
	case errors.Is(err, setting.ErrSettingNotFound):
		// no registry yet, the merge creates it
	default:
		return err //nolint:wrapcheck
	}

	merged, changed, err := extrafields.Merge(list, extrafields.NFCTagID())
	if err != nil {
		return err //nolint:wrapcheck
	}

	if exists && !changed {
		// already present, leave the entry untouched
		log.Debug().Str("setting", extrafields.SettingKeySpool).Msg("nfc_id field already present")

		return nil
	}

	value, err := merged.Encode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = setting.Set(tx, extrafields.SettingKeySpool, value)

	return err //nolint:wrapcheck
}

// downAddNFCIDExtraField removes the nfc_id field descriptor from the
// spool field registry. An absent registry is left absent.
func downAddNFCIDExtraField(tx *gorm.DB) error {
	existing, err := setting.Get(tx, extrafields.SettingKeySpool)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil
	}
	if err != nil {
		return err //nolint:wrapcheck
	}

	list, err := extrafields.DecodeList(existing.Value)
	if err != nil {
		return pkgerrors.Wrap(err, "setting "+extrafields.SettingKeySpool)
	}

	filtered, _ := extrafields.Remove(list, extrafields.NFCTagID().Key)

	value, err := filtered.Encode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = setting.Set(tx, extrafields.SettingKeySpool, value)

	return err //nolint:wrapcheck
}
