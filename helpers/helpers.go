package helpers

import (
	"net"
	"strconv"
	"time"

	"github.com/hako/durafmt"
)

// GetLocalIp returns the address other machines on the LAN can reach this
// host on. No packets are sent; the UDP "connection" only picks a route.
func GetLocalIp() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "localhost"
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "localhost"
	}

	return addr.IP.String()
}

func AppendSlashUrl(url string) string {
	if url == "" {
		return "/"
	}
	if len(url) > 0 && url[len(url)-1:] != "/" {
		return url + "/"
	}
	return url
}

func MakeUrlWithPort(url string, port int) string {
	return AppendSlashUrl(url + ":" + strconv.Itoa(port))
}

// HumanDuration renders d to the second, e.g. "1 hour 2 minutes 3 seconds".
func HumanDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d <= 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d).String()
}
