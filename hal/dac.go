package hal

// nullDAC discards samples. It is used when no audio output is available.
type nullDAC struct{}

func (nullDAC) WriteSample(v uint8) { _ = v }
