package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparePackage(t *testing.T) {
	tr, err := NewTransmitter("", nil)
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]interface{}{
		"assessment_id":  "test123",
		"findings_count": 3,
	})
	require.NoError(t, err)

	pkg, err := tr.PreparePackage(payload, map[string]interface{}{"assessment_type": "security"})
	require.NoError(t, err)

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), pkg.DataHash)
	assert.Len(t, pkg.TransmissionID, 32)
	assert.Equal(t, DefaultDestination, pkg.Destination)
	assert.Equal(t, "Verdigris Botanica Tribal Nation", pkg.Source)
	assert.Equal(t, len(payload), pkg.DataSizeBytes)
	assert.True(t, pkg.SovereigntyProtected)
	assert.Equal(t, EncryptionStandard, pkg.EncryptionStandard)
	assert.Equal(t, "security", pkg.Metadata["assessment_type"])
	assert.True(t, tr.VerifyEncryption(pkg))
}

func TestVerifyEncryptionRejectsIncompletePayload(t *testing.T) {
	tr, err := NewTransmitter("", nil)
	require.NoError(t, err)

	assert.False(t, tr.VerifyEncryption(Package{}))
	assert.False(t, tr.VerifyEncryption(Package{EncryptedPayload: Encrypted{Ciphertext: "x", Algorithm: Algorithm}}))
}

func TestSimulateTransmission(t *testing.T) {
	tr, err := NewTransmitter("https://cisa.gov/tribal-data-intake", nil)
	require.NoError(t, err)

	pkg, err := tr.PreparePackage([]byte(`{"findings":[]}`), nil)
	require.NoError(t, err)

	result := tr.Simulate(pkg)
	assert.Equal(t, "SIMULATED_SUCCESS", result.Status)
	assert.Equal(t, pkg.TransmissionID, result.TransmissionID)
	assert.Equal(t, "https://cisa.gov/tribal-data-intake", result.Endpoint)
	assert.Equal(t, pkg.DataHash, result.DataHash)
	assert.True(t, result.EncryptionVerified)
	assert.True(t, result.TribalIPProtected)

	receiptSum := sha256.Sum256([]byte(pkg.TransmissionID))
	assert.Equal(t, hex.EncodeToString(receiptSum[:])[:16], result.Response.CISAReceiptID)
	assert.Equal(t, "RECEIVED", result.Response.Status)
	assert.Equal(t, "Assessment data received and acknowledged", result.Response.Message)
}

func TestTransmitRecordsPackageMetadataAndLog(t *testing.T) {
	tr, err := NewTransmitter("", nil)
	require.NoError(t, err)

	payload := []byte(`{"assessment_id":"abc"}`)
	result, err := tr.Transmit(payload, map[string]interface{}{"magnitude": 2})
	require.NoError(t, err)

	require.NotNil(t, result.PackageMetadata)
	assert.Equal(t, len(payload), result.PackageMetadata.DataSizeBytes)
	assert.Equal(t, EncryptionStandard, result.PackageMetadata.EncryptionStandard)

	log := tr.TransmissionLog()
	require.Len(t, log, 1)
	assert.Equal(t, result.TransmissionID, log[0].TransmissionID)
	assert.NotNil(t, log[0].PackageMetadata)
}

func TestDecryptPackagePayloadRoundTrip(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)
	tr, err := NewTransmitter("", key)
	require.NoError(t, err)

	payload := []byte(`{"severity_summary":{"info":2}}`)
	pkg, err := tr.PreparePackage(payload, nil)
	require.NoError(t, err)

	got, err := tr.Decrypt(pkg.EncryptedPayload)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	sum := sha256.Sum256(got)
	assert.Equal(t, pkg.DataHash, hex.EncodeToString(sum[:]))
}
