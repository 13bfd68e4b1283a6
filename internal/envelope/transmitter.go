package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// EncryptionStandard is the compliance banner carried on every package.
	EncryptionStandard = "FIPS 140-2 Compliant AES-256-GCM"

	DefaultEndpoint    = "https://cisa.gov/tribal-data-intake"
	DefaultDestination = "CISA"

	defaultSource = "Verdigris Botanica Tribal Nation"

	statusSimulated = "SIMULATED_SUCCESS"
	statusReceived  = "RECEIVED"
)

// Package is a prepared transmission: the sealed payload plus the
// integrity hash and sharing metadata.
type Package struct {
	TransmissionID       string                 `json:"transmission_id"`
	Destination          string                 `json:"destination"`
	Source               string                 `json:"source"`
	Timestamp            string                 `json:"timestamp"`
	DataHash             string                 `json:"data_hash"`
	DataSizeBytes        int                    `json:"data_size_bytes"`
	EncryptedPayload     Encrypted              `json:"encrypted_payload"`
	Metadata             map[string]interface{} `json:"metadata"`
	SovereigntyProtected bool                   `json:"tribal_sovereignty_protected"`
	EncryptionStandard   string                 `json:"encryption_standard"`
}

// Receipt is the simulated acknowledgement from the receiving side.
type Receipt struct {
	CISAReceiptID     string `json:"cisa_receipt_id"`
	ReceivedTimestamp string `json:"received_timestamp"`
	Status            string `json:"status"`
	Message           string `json:"message"`
}

// PackageMetadata summarizes the package on a transmission result.
type PackageMetadata struct {
	Source             string `json:"source"`
	DataSizeBytes      int    `json:"data_size_bytes"`
	EncryptionStandard string `json:"encryption_standard"`
}

// Result records one simulated transmission.
type Result struct {
	TransmissionID     string           `json:"transmission_id"`
	Endpoint           string           `json:"endpoint"`
	Timestamp          string           `json:"timestamp"`
	Status             string           `json:"status"`
	DataHash           string           `json:"data_hash"`
	EncryptionVerified bool             `json:"encryption_verified"`
	TribalIPProtected  bool             `json:"tribal_ip_protected"`
	Response           Receipt          `json:"response"`
	PackageMetadata    *PackageMetadata `json:"package_metadata,omitempty"`
}

// Transmitter prepares encrypted packages and simulates their delivery.
// Nothing is sent over the network.
type Transmitter struct {
	endpoint string
	sealer   *Sealer
	log      []Result
}

// NewTransmitter builds a transmitter with the given key; a nil key
// means a fresh random one. An empty endpoint falls back to the
// default intake endpoint.
func NewTransmitter(endpoint string, key []byte) (*Transmitter, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if key == nil {
		fresh, err := NewKey()
		if err != nil {
			return nil, err
		}
		key = fresh
	}
	sealer, err := NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &Transmitter{endpoint: endpoint, sealer: sealer}, nil
}

// PreparePackage seals the serialized payload and bundles it with its
// integrity hash and metadata.
func (t *Transmitter) PreparePackage(payload []byte, metadata map[string]interface{}) (Package, error) {
	sum := sha256.Sum256(payload)
	dataHash := hex.EncodeToString(sum[:])

	encrypted, err := t.sealer.Seal(payload)
	if err != nil {
		return Package{}, err
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Package{
		TransmissionID:       newTransmissionID(dataHash),
		Destination:          DefaultDestination,
		Source:               defaultSource,
		Timestamp:            time.Now().UTC().Format(time.RFC3339Nano),
		DataHash:             dataHash,
		DataSizeBytes:        len(payload),
		EncryptedPayload:     encrypted,
		Metadata:             metadata,
		SovereigntyProtected: true,
		EncryptionStandard:   EncryptionStandard,
	}, nil
}

// Simulate records a transmission of the package without touching the
// network and returns the simulated result with its receipt.
func (t *Transmitter) Simulate(pkg Package) Result {
	receiptSum := sha256.Sum256([]byte(pkg.TransmissionID))
	result := Result{
		TransmissionID:     pkg.TransmissionID,
		Endpoint:           t.endpoint,
		Timestamp:          time.Now().UTC().Format(time.RFC3339Nano),
		Status:             statusSimulated,
		DataHash:           pkg.DataHash,
		EncryptionVerified: true,
		TribalIPProtected:  pkg.SovereigntyProtected,
		Response: Receipt{
			CISAReceiptID:     hex.EncodeToString(receiptSum[:])[:16],
			ReceivedTimestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Status:            statusReceived,
			Message:           "Assessment data received and acknowledged",
		},
	}
	t.log = append(t.log, result)
	return result
}

// Transmit prepares a package for the payload and simulates delivery.
func (t *Transmitter) Transmit(payload []byte, metadata map[string]interface{}) (Result, error) {
	pkg, err := t.PreparePackage(payload, metadata)
	if err != nil {
		return Result{}, err
	}
	result := t.Simulate(pkg)
	result.PackageMetadata = &PackageMetadata{
		Source:             pkg.Source,
		DataSizeBytes:      pkg.DataSizeBytes,
		EncryptionStandard: pkg.EncryptionStandard,
	}
	if n := len(t.log); n > 0 {
		t.log[n-1] = result
	}
	return result, nil
}

// TransmissionLog returns all simulated transmissions so far.
func (t *Transmitter) TransmissionLog() []Result {
	return append([]Result{}, t.log...)
}

// VerifyEncryption checks that a package carries a complete sealed payload.
func (t *Transmitter) VerifyEncryption(pkg Package) bool {
	p := pkg.EncryptedPayload
	return p.Ciphertext != "" && p.Nonce != "" && p.Algorithm != "" && p.Timestamp != ""
}

// Decrypt opens a sealed payload for verification. Only this process
// holds the key; a real recipient could not do this.
func (t *Transmitter) Decrypt(enc Encrypted) ([]byte, error) {
	return t.sealer.Open(enc)
}

func newTransmissionID(dataHash string) string {
	sum := sha256.Sum256([]byte(time.Now().UTC().Format(time.RFC3339Nano) + dataHash))
	return hex.EncodeToString(sum[:])[:32]
}
