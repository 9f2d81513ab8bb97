package desktop

// FilesystemEscape maps an arbitrary name to a filesystem-safe token:
// every byte outside [A-Za-z0-9._-] becomes an underscore. Distinct category
// strings stay distinct because '.' and '-' pass through unchanged.
func FilesystemEscape(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			out[i] = b
		case b == '.' || b == '-' || b == '_':
			out[i] = b
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
