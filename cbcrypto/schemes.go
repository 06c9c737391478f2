package cbcrypto

// RegisterEd25519 registers the Ed25519 scheme with reg under the "ed25519"
// type tag.
func RegisterEd25519(reg *Registry) {
	reg.Register("ed25519", Ed25519PubKey{}, func(b []byte) (PubKey, error) {
		return NewEd25519PubKey(b)
	})
}

// RegisterSecp256k1 registers the Secp256k1 scheme with reg under the
// "secp256k" type tag (eight bytes, the registry's prefix width).
func RegisterSecp256k1(reg *Registry) {
	reg.Register("secp256k", Secp256k1PubKey{}, func(b []byte) (PubKey, error) {
		return NewSecp256k1PubKey(b)
	})
}
