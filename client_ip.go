// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.
// The resolvers in this file are derivative of https://github.com/realclientip/realclientip-go
// (all credit to Adam Pritchard).

package redirects

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	ErrInvalidIPAddress     = errors.New("invalid ip address")
	ErrUnspecifiedIPAddress = errors.New("unspecified ip address")
)

// ClientIPResolver derives the IP address of the client that initiated the
// request. Implementations differ in which part of the request they trust.
type ClientIPResolver interface {
	// ClientIP returns the client IP for the request. The returned net.IPAddr
	// may contain a zone identifier. If no valid IP can be derived, an error
	// is returned.
	ClientIP(r *http.Request) (*net.IPAddr, error)
}

// Chain attempts the given resolvers in order, stopping at the first one that
// derives a valid IP. A common use is a server that accepts both direct
// connections and proxied requests carrying a header:
//
//	NewChain(NewSingleIPHeader(HeaderXRealIP), NewRemoteAddr())
type Chain struct {
	resolvers []ClientIPResolver
}

// NewChain creates a [Chain] from the given resolvers.
func NewChain(resolvers ...ClientIPResolver) Chain {
	return Chain{resolvers: resolvers}
}

// ClientIP derives the client IP using the [Chain] resolver. If every chained
// resolver fails, the joined errors are returned.
func (s Chain) ClientIP(r *http.Request) (*net.IPAddr, error) {
	var errs error
	for _, sub := range s.resolvers {
		ipAddr, err := sub.ClientIP(r)
		if err == nil {
			return ipAddr, nil
		}
		errs = errors.Join(errs, err)
	}
	return nil, errs
}

// RemoteAddr derives the client IP from the request socket address. This
// resolver should be used when the server accepts direct connections rather
// than sitting behind a reverse proxy.
type RemoteAddr struct{}

// NewRemoteAddr creates a [RemoteAddr] resolver.
func NewRemoteAddr() RemoteAddr {
	return RemoteAddr{}
}

// ClientIP derives the client IP using the [RemoteAddr] resolver.
func (s RemoteAddr) ClientIP(r *http.Request) (*net.IPAddr, error) {
	ipAddr, err := parseIPAddr(r.RemoteAddr)
	if err != nil {
		return nil, fmt.Errorf("remote address resolver: %w", err)
	}
	return ipAddr, nil
}

// SingleIPHeader derives the client IP from a single-IP header such as
// X-Real-IP, CF-Connecting-IP or True-Client-IP. This resolver should be used
// when the header is set by a trusted reverse proxy and cannot be spoofed.
type SingleIPHeader struct {
	headerName string
}

// NewSingleIPHeader creates a [SingleIPHeader] resolver that reads the client
// IP from the headerName request header. It panics if headerName is empty or
// names the X-Forwarded-For list header.
func NewSingleIPHeader(headerName string) SingleIPHeader {
	if headerName == "" {
		panic(errors.New("header must not be empty"))
	}

	// Lookups go through the http.Header map, which is keyed by canonicalized
	// header name. Canonicalize here so it only happens once.
	headerName = http.CanonicalHeaderKey(headerName)
	if headerName == HeaderXForwardedFor {
		panic(fmt.Errorf("header must not be %s", HeaderXForwardedFor))
	}

	return SingleIPHeader{headerName: headerName}
}

// ClientIP derives the client IP using the [SingleIPHeader] resolver.
func (s SingleIPHeader) ClientIP(r *http.Request) (*net.IPAddr, error) {
	// RFC 2616 does not allow multiple instances of single-IP headers. If
	// several arrive anyway, the last instance should carry the newest value.
	matches := r.Header.Values(s.headerName)
	if len(matches) == 0 || matches[len(matches)-1] == "" {
		return nil, fmt.Errorf("single ip header resolver: header %q not found", s.headerName)
	}

	ipAddr, err := parseIPAddr(matches[len(matches)-1])
	if err != nil {
		return nil, fmt.Errorf("single ip header resolver: %w", err)
	}
	return ipAddr, nil
}

// RightmostTrustedCount derives the client IP from the X-Forwarded-For header,
// counting backwards from the right through the addresses appended by trusted
// reverse proxies. With a single trusted proxy the rightmost value is returned.
type RightmostTrustedCount struct {
	trustedCount int
}

// NewRightmostTrustedCount creates a [RightmostTrustedCount] resolver.
// trustedCount is the number of trusted reverse proxies in front of the
// server. It panics if trustedCount is not greater than zero.
func NewRightmostTrustedCount(trustedCount int) RightmostTrustedCount {
	if trustedCount <= 0 {
		panic(errors.New("count must be greater than zero"))
	}
	return RightmostTrustedCount{trustedCount: trustedCount}
}

// ClientIP derives the client IP using the [RightmostTrustedCount] resolver.
func (s RightmostTrustedCount) ClientIP(r *http.Request) (*net.IPAddr, error) {
	vals := forwardedForValues(r.Header)
	if len(vals) < s.trustedCount {
		// A misconfiguration error. There were fewer IPs than trusted proxies.
		return nil, fmt.Errorf("rightmost trusted count resolver: expected at least %d forwarded IP(s)", s.trustedCount)
	}

	ipAddr, err := parseIPAddr(vals[len(vals)-s.trustedCount])
	if err != nil {
		// The first trusted proxy did not append a valid IP address.
		return nil, fmt.Errorf("rightmost trusted count resolver: %w", err)
	}
	return ipAddr, nil
}

// forwardedForValues returns the individual values of every X-Forwarded-For
// header instance, in order, with surrounding whitespace trimmed.
func forwardedForValues(headers http.Header) []string {
	var vals []string
	for _, h := range headers.Values(HeaderXForwardedFor) {
		for _, v := range strings.Split(h, ",") {
			vals = append(vals, strings.TrimSpace(v))
		}
	}
	return vals
}

// parseIPAddr parses ip into a [net.IPAddr], stripping a port, matched square
// brackets and an IPv6 zone suffix first. Unspecified addresses such as
// "0.0.0.0" or "::" parse but are never valid client IPs and are rejected.
func parseIPAddr(ip string) (*net.IPAddr, error) {
	host, _, err := net.SplitHostPort(ip)
	if err == nil {
		ip = host
	}
	// net.SplitHostPort may complain about too many colons in a bracketless
	// IPv6 address carrying no port. net.ParseIP is the final arbiter of validity.

	// Square brackets around IPv6 addresses are trimmed only when matched.
	if len(ip) >= 2 && ip[0] == '[' && ip[len(ip)-1] == ']' {
		ip = ip[1 : len(ip)-1]
	}

	// The IPv6 scoped addressing zone identifier starts after the last percent sign.
	var zone string
	if i := strings.LastIndexByte(ip, '%'); i > 0 {
		ip, zone = ip[:i], ip[i+1:]
	}

	ipAddr := &net.IPAddr{IP: net.ParseIP(ip), Zone: zone}
	if ipAddr.IP == nil {
		return nil, ErrInvalidIPAddress
	}
	if ipAddr.IP.IsUnspecified() {
		return nil, ErrUnspecifiedIPAddress
	}
	return ipAddr, nil
}
