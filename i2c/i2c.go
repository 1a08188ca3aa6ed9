package i2c

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// I2C is one slave device on a Linux i2c-dev bus. In simulated mode
// nothing is opened and reads return the last bytes written.
type I2C struct {
	fd      *os.File
	address uint8
	fdSim   bool
	simData []uint8
	dump    bool
}

const (
	I2C_SLAVE = 0x0703
)

func (this *I2C) simLog(format string, args ...interface{}) {
	if !this.dump {
		return
	}
	log.Printf(format, args...)
}

// Open opens a connection to the i2c device
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		return &I2C{fdSim: true, address: address}, nil
	}
	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %d", bus)
	}
	if err := ioctl(f.Fd(), I2C_SLAVE, uintptr(address)); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "select i2c device 0x%02x", address)
	}
	return &I2C{fd: f, address: address}, nil
}

// DebugDump logs every simulated transfer
func (this *I2C) DebugDump(on bool) {
	this.dump = on
}

func (this *I2C) Address() uint8 {
	return this.address
}

func (this *I2C) Close() error {
	if this.fdSim {
		this.simLog("i2c close: 0x%02x", this.address)
		return nil
	}
	return this.fd.Close()
}

func (this *I2C) Write(buf []uint8) (int, error) {
	// not MT safe, callers hold their own lock
	if err := this.selectLine(); err != nil {
		return 0, err
	}
	if this.fdSim {
		this.simLog("i2c write 0x%02x: % 02x", this.address, buf)
		this.simData = append(this.simData[:0], buf...)
		return len(buf), nil
	}
	return this.fd.Write(buf)
}

// Read fills buf from the device
func (this *I2C) Read(buf []uint8) (int, error) {
	if err := this.selectLine(); err != nil {
		return 0, err
	}
	if this.fdSim {
		n := copy(buf, this.simData)
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		this.simLog("i2c read 0x%02x: % 02x", this.address, buf)
		return len(buf), nil
	}
	return this.fd.Read(buf)
}

func (this *I2C) selectLine() error {
	if this.fdSim {
		return nil
	}
	return ioctl(this.fd.Fd(), I2C_SLAVE, uintptr(this.address))
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}
