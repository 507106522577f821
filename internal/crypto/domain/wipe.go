package domain

// Wipe zeroes every buffer it is given. Session keys, decrypted uploads and private
// key PEM bytes are wiped as soon as the pipeline is done with them.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
