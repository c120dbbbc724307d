package core

import (
	"fmt"

	"go.uber.org/zap"
)

const ZZ_CROSSTALK = "zz_crosstalk"

var noiseManager *NoiseManager

// factory pattern
type NoiseManager struct {
	acceptableNoise []NoiseTerm //empty terms used as factories
}

func (n *NoiseManager) RegisterNoise(terms ...NoiseTerm) error {
	for _, term := range terms {
		// check if the noise type is already registered
		for _, t := range n.acceptableNoise {
			if t.Label() == term.Label() {
				return fmt.Errorf("noise:%s is already registered", term.Label())
			}
		}
		zap.L().Debug(fmt.Sprintf("registering noise type %s", term.Label()))
		n.acceptableNoise = append(n.acceptableNoise, term)
	}
	return nil
}

func (n *NoiseManager) AcceptableNoiseLabels() []string {
	labels := []string{}
	for _, term := range n.acceptableNoise {
		labels = append(labels, term.Label())
	}
	return labels
}

// NewNoiseFromLabel instantiates the registered noise type for label with
// the given parameter records. An unknown label is a ConfigurationError:
// a chip asking for a noise term nobody registered is a wiring mistake.
func (n *NoiseManager) NewNoiseFromLabel(label string, p *HardwareParams, d *DerivedParams) (NoiseTerm, error) {
	for _, t := range n.acceptableNoise {
		zap.L().Debug(fmt.Sprintf("checking noise type %s", t.Label()))
		if t.Label() == label {
			return t.New(p, d), nil
		}
	}
	return nil, NewConfigurationError("noise type %s is not registered", label)
}

func NewNoiseManager(terms ...NoiseTerm) (*NoiseManager, error) {
	nm := &NoiseManager{}
	for _, term := range terms {
		zap.L().Debug(fmt.Sprintf("registering noise type %s", term.Label()))
		err := nm.RegisterNoise(term)
		if err != nil {
			return nil, err
		}
	}
	noiseManager = nm
	return nm, nil
}

func GetNoiseManager() *NoiseManager {
	return noiseManager
}
